package analytics

import (
	"reflect"
	"testing"

	"commerce-dashboard/models"
)

func TestGeolocations(t *testing.T) {
	geo := []models.GeoPoint{
		{ZipCodePrefix: 1001, Latitude: -23.55, Longitude: -46.63},
		{ZipCodePrefix: 1001, Latitude: -23.56, Longitude: -46.64}, // duplicate prefix, kept
		{ZipCodePrefix: 2002, Latitude: -22.90, Longitude: -43.20},
		{ZipCodePrefix: 3003, Latitude: -25.43, Longitude: -49.27},
	}
	ds := NewDataset([]models.OrderRecord{
		{CustomerZipCodePrefix: 1001, SellerZipCodePrefix: 3003},
		{CustomerZipCodePrefix: 1001, SellerZipCodePrefix: 3003},
		{CustomerZipCodePrefix: 9999, SellerZipCodePrefix: 3003}, // prefix absent from reference
	}, geo)

	customers := ds.CustomerGeolocations(ds.Orders)
	if !reflect.DeepEqual(customers, geo[:2]) {
		t.Errorf("Got customer points %v, want %v", customers, geo[:2])
	}

	sellers := ds.SellerGeolocations(ds.Orders)
	if !reflect.DeepEqual(sellers, geo[3:]) {
		t.Errorf("Got seller points %v, want %v", sellers, geo[3:])
	}
}

func TestGeolocationsEmptyOrders(t *testing.T) {
	ds := NewDataset(nil, []models.GeoPoint{{ZipCodePrefix: 1001}})
	if got := ds.CustomerGeolocations(nil); len(got) != 0 {
		t.Errorf("Got %d points from empty orders, want 0", len(got))
	}
}

func TestDatasetBounds(t *testing.T) {
	ds := NewDataset([]models.OrderRecord{
		lineItem("B", "2017-05-31 23:59:59", 20),
		lineItem("A", "2016-09-04 21:15:19", 10),
		lineItem("C", "2017-06-01 00:00:00", 30),
	}, nil)

	if got := ds.MinPurchase(); !got.Equal(ts("2016-09-04 21:15:19")) {
		t.Errorf("MinPurchase = %v", got)
	}
	if got := ds.MaxPurchase(); !got.Equal(ts("2017-06-01 00:00:00")) {
		t.Errorf("MaxPurchase = %v", got)
	}

	empty := NewDataset(nil, nil)
	if !empty.MinPurchase().IsZero() || !empty.MaxPurchase().IsZero() {
		t.Errorf("Empty dataset bounds should be zero times")
	}
}
