package kml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedCoordinates reports a coordinate string that cannot be parsed
// into a label point. Callers skip relabeling for that one polygon; the
// error never aborts a batch.
var ErrMalformedCoordinates = errors.New("malformed coordinates")

// Centroid computes the arithmetic mean of a polygon's vertices from a KML
// coordinate string ("lon,lat[,alt]" tuples separated by whitespace). The
// altitude component is ignored; the result is serialized as "lon,lat,0".
func Centroid(coordText string) (string, error) {
	fields := strings.Fields(coordText)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty coordinate string: %w", ErrMalformedCoordinates)
	}

	var lonSum, latSum float64
	for _, f := range fields {
		parts := strings.Split(f, ",")
		if len(parts) < 2 {
			return "", fmt.Errorf("vertex %q: %w", f, ErrMalformedCoordinates)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return "", fmt.Errorf("vertex %q: %w", f, ErrMalformedCoordinates)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return "", fmt.Errorf("vertex %q: %w", f, ErrMalformedCoordinates)
		}
		lonSum += lon
		latSum += lat
	}

	n := float64(len(fields))
	return strconv.FormatFloat(lonSum/n, 'f', -1, 64) + "," +
		strconv.FormatFloat(latSum/n, 'f', -1, 64) + ",0", nil
}
