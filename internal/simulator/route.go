package simulator

import "github.com/bitenow/bitenow/internal/domain/model"

// Route returns the segments+1 waypoints of the delivery path, linearly
// interpolated in lat/lng between origin and dest. Waypoint 0 is the origin
// and the last waypoint is the destination.
func Route(origin, dest model.LatLng, segments int) []model.LatLng {
	if segments < 1 {
		segments = 1
	}
	points := make([]model.LatLng, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		points = append(points, model.LatLng{
			Lat: origin.Lat + (dest.Lat-origin.Lat)*t,
			Lng: origin.Lng + (dest.Lng-origin.Lng)*t,
		})
	}
	return points
}
