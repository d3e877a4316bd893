package kml

import "strings"

// HTMLColorToKML converts an HTML "#RRGGBB" color to KML's aabbggrr byte
// ordering with full opacity. Anything that is not a six-digit hex color
// falls back to opaque red.
func HTMLColorToKML(color string) string {
	c := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	if len(c) != 6 || !isHex(c) {
		return "ff0000ff"
	}
	return "ff" + c[4:6] + c[2:4] + c[0:2]
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
