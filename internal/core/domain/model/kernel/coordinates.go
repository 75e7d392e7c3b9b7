package kernel

import (
	"errors"
	"fmt"
	"math"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

const (
	// LatitudeMin and LatitudeMax bound a valid WGS84 latitude in degrees.
	LatitudeMin = -90.0
	LatitudeMax = 90.0
	// LongitudeMin and LongitudeMax bound a valid WGS84 longitude in degrees.
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrCoordinatesAreNotConstructed is returned when a zero-value Coordinates is used.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates")

// Coordinates is an immutable WGS84 point: a branch location, a delivery
// address or a route stop. The zero value is invalid.
type Coordinates struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewCoordinates validates latitude and longitude and returns the point.
// Both violations are reported together when both are out of range.
//
// Example:
//
//	c, err := kernel.NewCoordinates(-1.2921, 36.8219)
//	if err != nil {
//	    return err
//	}
func NewCoordinates(lat, lng float64) (Coordinates, error) {
	c := Coordinates{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setLat(lat), c.setLng(lng)); err != nil {
		return Coordinates{}, err
	}

	return c, nil
}

// Validate reports whether c was created by NewCoordinates.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

// Lat returns the latitude in degrees.
func (c Coordinates) Lat() float64 {
	return c.lat
}

// Lng returns the longitude in degrees.
func (c Coordinates) Lng() float64 {
	return c.lng
}

func (c Coordinates) String() string {
	return fmt.Sprintf("Coordinates(%.6f,%.6f)", c.lat, c.lng)
}

// IsEqual compares two constructed points.
func (c Coordinates) IsEqual(other Coordinates) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c.lat == other.lat && c.lng == other.lng, nil
}

// DistanceKm returns the great-circle (haversine) distance to other in kilometres.
func (c Coordinates) DistanceKm(other Coordinates) (float64, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1, lat2 := radians(c.lat), radians(other.lat)
	dLat := lat2 - lat1
	dLng := radians(other.lng - c.lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h))), nil
}

func (c *Coordinates) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	c.lat = lat
	return nil
}

func (c *Coordinates) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	c.lng = lng
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
