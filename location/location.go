// Package location checks the geographic search parameters accepted by the
// Yelp search API before a request is built.
package location

import "github.com/bodrovis/yelpex/apierr"

// Coordinate is a search centre. Latitude and Longitude are required; the
// rest are optional hints.
type Coordinate struct {
	Latitude         *float64
	Longitude        *float64
	Accuracy         *float64
	Altitude         *float64
	AltitudeAccuracy *float64
}

// Validate fails with MissingLatLng when latitude or longitude is unset.
func (c Coordinate) Validate() error {
	if c.Latitude == nil || c.Longitude == nil {
		return apierr.New(apierr.KindMissingLatLng, "")
	}
	return nil
}

// BoundingBox is a search area given by its south-west and north-east corners.
type BoundingBox struct {
	SWLatitude  *float64
	SWLongitude *float64
	NELatitude  *float64
	NELongitude *float64
}

// Validate fails with BoundingBoxNotComplete unless all four corners are set.
func (b BoundingBox) Validate() error {
	if b.SWLatitude == nil || b.SWLongitude == nil || b.NELatitude == nil || b.NELongitude == nil {
		return apierr.New(apierr.KindBoundingBoxNotComplete, "")
	}
	return nil
}

// Float is a helper for filling the optional fields.
func Float(v float64) *float64 { return &v }
