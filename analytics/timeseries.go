package analytics

import (
	"fmt"
	"sort"
	"time"

	"commerce-dashboard/models"

	"github.com/shopspring/decimal"
)

const monthLabel = "Jan 2006"

type periodBucket struct {
	month    time.Time
	orderIDs map[string]struct{}
	revenue  decimal.Decimal
}

// monthlyBuckets groups line items by calendar month, counting distinct
// order ids and summing payment values over all line items. Months with
// no records are omitted. The result is ordered chronologically.
func monthlyBuckets(orders []models.OrderRecord) []*periodBucket {
	byMonth := map[time.Time]*periodBucket{}
	for _, r := range orders {
		ts := r.OrderPurchaseTimestamp
		month := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
		b, ok := byMonth[month]
		if !ok {
			b = &periodBucket{month: month, orderIDs: map[string]struct{}{}}
			byMonth[month] = b
		}
		b.orderIDs[r.OrderID] = struct{}{}
		b.revenue = b.revenue.Add(r.PaymentValue)
	}

	buckets := make([]*periodBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].month.Before(buckets[j].month)
	})
	return buckets
}

// MonthlyOrders returns per-month order counts and revenue, ascending by
// month. Order counts are distinct order ids; revenue sums every line
// item, so an order spanning several items contributes each of them.
func MonthlyOrders(orders []models.OrderRecord) []models.PeriodSummary {
	buckets := monthlyBuckets(orders)
	summaries := make([]models.PeriodSummary, 0, len(buckets))
	for _, b := range buckets {
		summaries = append(summaries, models.PeriodSummary{
			Period:     b.month.Format(monthLabel),
			OrderCount: len(b.orderIDs),
			Revenue:    b.revenue,
		})
	}
	return summaries
}

// QuarterlyOrders resamples the monthly aggregate onto quarter
// boundaries (Q1 = Jan-Mar). Working from the monthly buckets rather
// than the raw rows guarantees each quarter equals the exact sum of its
// months.
func QuarterlyOrders(orders []models.OrderRecord) []models.PeriodSummary {
	buckets := monthlyBuckets(orders)

	var summaries []models.PeriodSummary
	labelOf := func(m time.Time) string {
		return fmt.Sprintf("Q%d %d", (int(m.Month())-1)/3+1, m.Year())
	}
	for _, b := range buckets {
		label := labelOf(b.month)
		if n := len(summaries); n > 0 && summaries[n-1].Period == label {
			summaries[n-1].OrderCount += len(b.orderIDs)
			summaries[n-1].Revenue = summaries[n-1].Revenue.Add(b.revenue)
			continue
		}
		summaries = append(summaries, models.PeriodSummary{
			Period:     label,
			OrderCount: len(b.orderIDs),
			Revenue:    b.revenue,
		})
	}
	return summaries
}
