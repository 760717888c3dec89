package analytics

import (
	"time"

	"commerce-dashboard/models"
)

// Dataset is an immutable snapshot of the transaction table and the
// geolocation reference table, loaded once at session start. All
// aggregations are pure functions over it; it is safe to share across
// goroutines without locking.
type Dataset struct {
	Orders []models.OrderRecord
	Geo    []models.GeoPoint
}

func NewDataset(orders []models.OrderRecord, geo []models.GeoPoint) *Dataset {
	return &Dataset{
		Orders: orders,
		Geo:    geo,
	}
}

// MinPurchase returns the earliest purchase timestamp in the dataset,
// or the zero time when the dataset is empty.
func (d *Dataset) MinPurchase() time.Time {
	var min time.Time
	for _, r := range d.Orders {
		if min.IsZero() || r.OrderPurchaseTimestamp.Before(min) {
			min = r.OrderPurchaseTimestamp
		}
	}
	return min
}

// MaxPurchase returns the latest purchase timestamp in the dataset,
// or the zero time when the dataset is empty.
func (d *Dataset) MaxPurchase() time.Time {
	var max time.Time
	for _, r := range d.Orders {
		if r.OrderPurchaseTimestamp.After(max) {
			max = r.OrderPurchaseTimestamp
		}
	}
	return max
}
