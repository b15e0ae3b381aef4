package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidLocation is returned when a coordinate pair cannot be parsed
var ErrInvalidLocation = errors.New("invalid location")

// Location represents a query point with latitude and longitude
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ParseLocation parses "lat,lon" (whitespace around either part is allowed)
func ParseLocation(s string) (Location, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return Location{}, fmt.Errorf("%w: %q is not lat,lon", ErrInvalidLocation, s)
	}
	return ParseLatLon(latStr, lonStr)
}

// ParseLatLon parses a latitude and a longitude given as separate strings
func ParseLatLon(latStr, lonStr string) (Location, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return Location{}, fmt.Errorf("%w: bad latitude %q", ErrInvalidLocation, latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Location{}, fmt.Errorf("%w: bad longitude %q", ErrInvalidLocation, lonStr)
	}
	return Location{Lat: lat, Lon: lon}, nil
}

// BoundingBox represents a rectangular area defined by two corners
type BoundingBox struct {
	BottomLeft Location `json:"bottom_left"`
	TopRight   Location `json:"top_right"`
}

// Match is the result of resolving a location against a region tree
type Match struct {
	Location Location `json:"location"`
	Found    bool     `json:"found"`
	Path     string   `json:"path,omitempty"`
	// Regions lists the matched region first, then its ancestors
	Regions []string `json:"regions,omitempty"`
}
