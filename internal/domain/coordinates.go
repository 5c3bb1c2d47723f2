package domain

import "fmt"

// Immutable geographic coordinates (longitude, latitude) of a hazard site.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Format the site as "lon lat" with five decimals, the layout used by hazard exports.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f %.5f", c.Lon, c.Lat)
}
