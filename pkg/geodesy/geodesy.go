// Package geodesy has great-circle helpers shared by the outlier filter and
// port resolution.
package geodesy

import "math"

const (
	EarthRadiusNM = 3440.065
	EarthRadiusKm = 6371.0088

	// KmPerDegreeLat is the length of one degree of latitude.
	KmPerDegreeLat = 111.195
)

// Haversine returns the central angle between two points in radians.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceNM is the haversine distance in nautical miles.
func DistanceNM(lat1, lon1, lat2, lon2 float64) float64 {
	return EarthRadiusNM * Haversine(lat1, lon1, lat2, lon2)
}

// DistanceKm is the haversine distance in kilometres.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return EarthRadiusKm * Haversine(lat1, lon1, lat2, lon2)
}

// Box is a latitude/longitude bounding box. WrapsLon is set when the box
// crosses the antimeridian, in which case longitude should not be filtered.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	WrapsLon       bool
}

// BoundingBox returns a box that contains every point within radiusKm of
// (lat, lon). It is a prefilter; callers still check the exact distance.
func BoundingBox(lat, lon, radiusKm float64) Box {
	dLat := radiusKm / KmPerDegreeLat
	b := Box{
		MinLat: math.Max(lat-dLat, -90),
		MaxLat: math.Min(lat+dLat, 90),
	}
	cosLat := math.Cos(lat * math.Pi / 180)
	if b.MinLat == -90 || b.MaxLat == 90 || cosLat < 1e-6 {
		b.MinLon, b.MaxLon, b.WrapsLon = -180, 180, true
		return b
	}
	dLon := dLat / cosLat
	b.MinLon, b.MaxLon = lon-dLon, lon+dLon
	if b.MinLon < -180 || b.MaxLon > 180 {
		b.MinLon, b.MaxLon, b.WrapsLon = -180, 180, true
	}
	return b
}

// Contains reports whether (lat, lon) lies inside the box.
func (b Box) Contains(lat, lon float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	return b.WrapsLon || (lon >= b.MinLon && lon <= b.MaxLon)
}
