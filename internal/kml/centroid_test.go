package kml

import (
	"errors"
	"testing"
)

func TestCentroid(t *testing.T) {
	tests := []struct {
		name   string
		coords string
		want   string
	}{
		{
			name:   "square",
			coords: "0,0,0 2,0,0 2,2,0 0,2,0",
			want:   "1,1,0",
		},
		{
			name:   "altitude ignored",
			coords: "0,0,120 2,0,340 2,2,99 0,2,0",
			want:   "1,1,0",
		},
		{
			name:   "two-component vertices",
			coords: "0,0 4,4",
			want:   "2,2,0",
		},
		{
			name:   "negative longitudes",
			coords: "-10,5,0 -20,15,0",
			want:   "-15,10,0",
		},
		{
			name:   "surrounding whitespace",
			coords: "\n  1,1,0 3,3,0  \n",
			want:   "2,2,0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Centroid(tt.coords)
			if err != nil {
				t.Fatalf("Centroid(%q) error: %v", tt.coords, err)
			}
			if got != tt.want {
				t.Errorf("Centroid(%q) = %q, want %q", tt.coords, got, tt.want)
			}
		})
	}
}

func TestCentroidMalformed(t *testing.T) {
	for _, coords := range []string{"", "   ", "nonsense", "1,notanumber,0", "5"} {
		_, err := Centroid(coords)
		if !errors.Is(err, ErrMalformedCoordinates) {
			t.Errorf("Centroid(%q) error = %v, want ErrMalformedCoordinates", coords, err)
		}
	}
}

func TestHTMLColorToKML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FF0000", "ff0000ff"},
		{"#00FF00", "ff00ff00"},
		{"#0000FF", "ffff0000"},
		{"336699", "ff996633"},
		{"#ABCDEF", "ffefcdab"},
		{"red", "ff0000ff"},
		{"#FFF", "ff0000ff"},
		{"", "ff0000ff"},
		{"#GGGGGG", "ff0000ff"},
	}

	for _, tt := range tests {
		if got := HTMLColorToKML(tt.in); got != tt.want {
			t.Errorf("HTMLColorToKML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
