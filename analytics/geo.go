package analytics

import (
	"commerce-dashboard/models"
)

// CustomerGeolocations returns the geolocation reference rows whose zip
// code prefix appears among the filtered orders' customer prefixes.
// Reference table order is preserved and duplicate rows per prefix are
// all retained.
func (d *Dataset) CustomerGeolocations(orders []models.OrderRecord) []models.GeoPoint {
	return d.geolocationsFor(orders, func(r *models.OrderRecord) int {
		return r.CustomerZipCodePrefix
	})
}

// SellerGeolocations is CustomerGeolocations keyed on the seller zip
// code prefix.
func (d *Dataset) SellerGeolocations(orders []models.OrderRecord) []models.GeoPoint {
	return d.geolocationsFor(orders, func(r *models.OrderRecord) int {
		return r.SellerZipCodePrefix
	})
}

func (d *Dataset) geolocationsFor(orders []models.OrderRecord, zipOf func(*models.OrderRecord) int) []models.GeoPoint {
	prefixes := map[int]struct{}{}
	for i := range orders {
		prefixes[zipOf(&orders[i])] = struct{}{}
	}

	points := make([]models.GeoPoint, 0, len(prefixes))
	for _, p := range d.Geo {
		if _, ok := prefixes[p.ZipCodePrefix]; ok {
			points = append(points, p)
		}
	}
	return points
}
