package analytics

import (
	"fmt"
	"time"

	"commerce-dashboard/models"

	"github.com/jinzhu/now"
)

// FilterByDateRange returns the subsequence of orders whose purchase
// timestamp lies in [first instant of the start month, last instant of
// the end month], preserving the original order. A start after the end
// yields an empty result, not an error.
func FilterByDateRange(orders []models.OrderRecord, startMonth, startYear, endMonth, endYear int) ([]models.OrderRecord, error) {
	if startMonth < 1 || startMonth > 12 || endMonth < 1 || endMonth > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got start=%d end=%d", models.ErrInvalidRange, startMonth, endMonth)
	}
	if startYear < 1 || endYear < 1 {
		return nil, fmt.Errorf("%w: year must be positive, got start=%d end=%d", models.ErrInvalidRange, startYear, endYear)
	}

	start := time.Date(startYear, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	end := now.New(time.Date(endYear, time.Month(endMonth), 1, 0, 0, 0, 0, time.UTC)).EndOfMonth()

	filtered := make([]models.OrderRecord, 0, len(orders))
	for _, r := range orders {
		if r.OrderPurchaseTimestamp.Before(start) || r.OrderPurchaseTimestamp.After(end) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}
