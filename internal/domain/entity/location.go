package entity

import "fmt"

// Location is a latitude/longitude value object.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OrderedPair renders the location as a parenthetical ordered pair.
func (l Location) OrderedPair() string {
	return fmt.Sprintf("(%v, %v)", l.Latitude, l.Longitude)
}
