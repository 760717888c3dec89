package analytics

import (
	"errors"
	"reflect"
	"testing"

	"commerce-dashboard/models"
)

func TestFilterByDateRange(t *testing.T) {
	orders := []models.OrderRecord{
		lineItem("A", "2016-09-04 21:15:19", 10),
		lineItem("B", "2017-05-31 23:59:59", 20),
		lineItem("C", "2017-06-01 00:00:00", 30),
		lineItem("D", "2018-08-29 15:00:37", 40),
	}

	testCases := []struct {
		name       string
		startMonth int
		startYear  int
		endMonth   int
		endYear    int

		wantIDs []string
		wantErr error
	}{
		{
			name:       "full range returns the input unchanged",
			startMonth: 9, startYear: 2016, endMonth: 8, endYear: 2018,
			wantIDs: []string{"A", "B", "C", "D"},
		},
		{
			name:       "end of month is inclusive",
			startMonth: 5, startYear: 2017, endMonth: 5, endYear: 2017,
			wantIDs: []string{"B"},
		},
		{
			name:       "first instant of next month is excluded",
			startMonth: 6, startYear: 2017, endMonth: 6, endYear: 2017,
			wantIDs: []string{"C"},
		},
		{
			name:       "start after end yields empty, not an error",
			startMonth: 8, startYear: 2018, endMonth: 9, endYear: 2016,
			wantIDs: []string{},
		},
		{
			name:       "no records in range",
			startMonth: 1, startYear: 2020, endMonth: 12, endYear: 2020,
			wantIDs: []string{},
		},
		{
			name:       "month out of range",
			startMonth: 13, startYear: 2017, endMonth: 12, endYear: 2017,
			wantErr: models.ErrInvalidRange,
		},
		{
			name:       "month zero",
			startMonth: 1, startYear: 2017, endMonth: 0, endYear: 2017,
			wantErr: models.ErrInvalidRange,
		},
		{
			name:       "year zero",
			startMonth: 1, startYear: 0, endMonth: 12, endYear: 2017,
			wantErr: models.ErrInvalidRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FilterByDateRange(orders, tc.startMonth, tc.startYear, tc.endMonth, tc.endYear)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Got error %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.OrderID)
			}
			if !reflect.DeepEqual(ids, tc.wantIDs) {
				t.Errorf("Got orders %v, want %v", ids, tc.wantIDs)
			}
		})
	}
}

// Filtering with the dataset's own bounds must return the identical row
// sequence.
func TestFilterFullRangeIdempotence(t *testing.T) {
	orders := []models.OrderRecord{
		lineItem("B", "2017-05-31 23:59:59", 20),
		lineItem("A", "2016-09-04 21:15:19", 10),
		lineItem("C", "2017-06-01 00:00:00", 30),
	}

	got, err := FilterByDateRange(orders, 9, 2016, 6, 2017)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, orders) {
		t.Errorf("Full-range filter changed the rows: got %v, want %v", got, orders)
	}
}
