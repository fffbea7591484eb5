package photos

import "testing"

func TestParseKind(t *testing.T) {
	for _, s := range []string{"cover", "gallery", "inspiration"} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("ParseKind(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"", "banner", "COVER"} {
		if _, err := ParseKind(s); err == nil {
			t.Errorf("ParseKind(%q) should fail", s)
		}
	}
}
