package analytics

import (
	"math"
	"sort"

	"commerce-dashboard/models"

	"github.com/shopspring/decimal"
)

const spendingQuantile = 0.95

// SpendingDistribution sums each customer's payments over the selected
// range (one record per distinct customer_unique_id, last purchase = max
// timestamp) and trims customers whose total lies above the 95th
// percentile. Trimmed customers are excluded from this view only; they
// remain in every other aggregate. Customers keep their first-seen
// order.
func SpendingDistribution(orders []models.OrderRecord) []models.SpendingRecord {
	byCustomer := map[string]*models.SpendingRecord{}
	var order []string
	for _, r := range orders {
		rec, ok := byCustomer[r.CustomerUniqueID]
		if !ok {
			rec = &models.SpendingRecord{CustomerUniqueID: r.CustomerUniqueID}
			byCustomer[r.CustomerUniqueID] = rec
			order = append(order, r.CustomerUniqueID)
		}
		if r.OrderPurchaseTimestamp.After(rec.LastPurchase) {
			rec.LastPurchase = r.OrderPurchaseTimestamp
		}
		rec.TotalSpending = rec.TotalSpending.Add(r.PaymentValue)
	}
	if len(order) == 0 {
		return nil
	}

	totals := make([]decimal.Decimal, 0, len(order))
	for _, id := range order {
		totals = append(totals, byCustomer[id].TotalSpending)
	}
	cutoff := quantile(totals, spendingQuantile)

	records := make([]models.SpendingRecord, 0, len(order))
	for _, id := range order {
		if byCustomer[id].TotalSpending.GreaterThan(cutoff) {
			continue
		}
		records = append(records, *byCustomer[id])
	}
	return records
}

// quantile computes the q-th quantile with linear interpolation between
// the two nearest ranks. The input is not modified.
func quantile(values []decimal.Decimal, q float64) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	rank := q * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := decimal.NewFromFloat(rank - float64(lo))
	return sorted[lo].Add(sorted[hi].Sub(sorted[lo]).Mul(frac))
}
