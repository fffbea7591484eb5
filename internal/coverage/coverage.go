package coverage

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
)

//go:embed data/service_centers.json
var serviceCentersJSON []byte

type City struct {
	Name  string   `json:"name"`
	Lat   float64  `json:"lat"`
	Lng   float64  `json:"lng"`
	Areas []string `json:"areas"`
}

type index struct {
	cities []City
	byName map[string]City
}

func load() (*index, error) {
	var doc struct {
		Cities []City `json:"cities"`
	}
	if err := json.Unmarshal(serviceCentersJSON, &doc); err != nil {
		return nil, err
	}

	idx := &index{byName: make(map[string]City, len(doc.Cities))}
	for _, c := range doc.Cities {
		sort.Strings(c.Areas)
		idx.cities = append(idx.cities, c)
		idx.byName[strings.ToLower(c.Name)] = c
	}
	sort.Slice(idx.cities, func(i, j int) bool { return idx.cities[i].Name < idx.cities[j].Name })
	return idx, nil
}

var centers *index

func init() {
	idx, err := load()
	if err != nil {
		panic("coverage: bad embedded service centers data: " + err.Error())
	}
	centers = idx
}

// Cities lists every covered city with its areas.
func Cities() []City {
	return centers.cities
}

// Areas returns the covered areas of a city, case-insensitively.
func Areas(city string) ([]string, bool) {
	c, ok := centers.byName[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return nil, false
	}
	return c.Areas, true
}

// Covered reports whether the city, and the area within it when non-empty,
// is serviced.
func Covered(city, area string) bool {
	areas, ok := Areas(city)
	if !ok {
		return false
	}
	if strings.TrimSpace(area) == "" {
		return true
	}
	for _, a := range areas {
		if strings.EqualFold(a, strings.TrimSpace(area)) {
			return true
		}
	}
	return false
}
