package photos

import (
	"fmt"
	"time"
)

// Kind distinguishes the single cover shot from gallery and inspiration
// images on a service page.
type Kind string

const (
	KindCover       Kind = "cover"
	KindGallery     Kind = "gallery"
	KindInspiration Kind = "inspiration"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCover, KindGallery, KindInspiration:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown photo kind: %s", s)
	}
}

type Photo struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"serviceId"`
	Kind      Kind      `json:"kind"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
