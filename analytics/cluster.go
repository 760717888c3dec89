package analytics

import (
	"commerce-dashboard/models"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

type clusterUnit struct {
	cnt      int64
	origCell s2.CellID
}

type clusterAggregator struct {
	level int
	units map[s2.CellID]*clusterUnit
}

const (
	expectedCells = 160
	minLevel      = 6
	maxLevel      = 16
)

// cellBaseLevel picks the s2 cell level whose cells tile the points'
// bounding rect into roughly expectedCells buckets.
func cellBaseLevel(latMin, lonMin, latMax, lonMax float64) int {
	minLL := s2.LatLngFromDegrees(latMin, lonMin)
	maxLL := s2.LatLngFromDegrees(latMax, lonMax)

	rect := s2.Rect{
		Lat: r1.Interval{
			Lo: minLL.Lat.Radians(),
			Hi: maxLL.Lat.Radians()},
		Lng: s1.Interval{
			Lo: minLL.Lng.Radians(),
			Hi: maxLL.Lng.Radians()},
	}

	area := rect.Area()

	center := s2.CellIDFromLatLng(s2.LatLngFromDegrees((latMin+latMax)/2, (lonMin+lonMax)/2))

	for lv := maxLevel; lv >= minLevel; lv-- {
		cc := s2.CellFromCellID(center.Parent(lv))
		if area/cc.ApproxArea() < expectedCells {
			return lv
		}
	}
	return minLevel // Large enough level
}

func newClusterAggregator(points []models.GeoPoint) clusterAggregator {
	latMin, lonMin := points[0].Latitude, points[0].Longitude
	latMax, lonMax := latMin, lonMin
	for _, p := range points[1:] {
		if p.Latitude < latMin {
			latMin = p.Latitude
		}
		if p.Latitude > latMax {
			latMax = p.Latitude
		}
		if p.Longitude < lonMin {
			lonMin = p.Longitude
		}
		if p.Longitude > lonMax {
			lonMax = p.Longitude
		}
	}
	return clusterAggregator{
		level: cellBaseLevel(latMin, lonMin, latMax, lonMax),
		units: make(map[s2.CellID]*clusterUnit),
	}
}

func (a *clusterAggregator) addPoint(lat, lon float64) {
	pc := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lon))
	parent := pc.Parent(a.level)
	if _, ok := a.units[parent]; !ok {
		a.units[parent] = &clusterUnit{}
	}
	a.units[parent].cnt += 1
	a.units[parent].origCell = pc
}

func (a *clusterAggregator) toArray() []models.ClusterPoint {
	r := make([]models.ClusterPoint, 0, len(a.units))
	for c, unit := range a.units {
		ll := c.LatLng()
		if unit.cnt == 1 {
			// Single point keeps its exact coordinates.
			ll = unit.origCell.LatLng()
		}
		r = append(r, models.ClusterPoint{
			Latitude:  ll.Lat.Degrees(),
			Longitude: ll.Lng.Degrees(),
			Count:     unit.cnt,
		})
	}
	return r
}

// ClusterGeolocations buckets geolocation points into s2 cells sized to
// the point set's extent, for map display at interactive zoom levels.
func ClusterGeolocations(points []models.GeoPoint) []models.ClusterPoint {
	if len(points) == 0 {
		return nil
	}
	a := newClusterAggregator(points)
	for _, p := range points {
		a.addPoint(p.Latitude, p.Longitude)
	}
	return a.toArray()
}
