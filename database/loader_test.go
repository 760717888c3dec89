package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"commerce-dashboard/config"
	"commerce-dashboard/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"
)

var (
	db   *sql.DB
	mock sqlmock.Sqlmock
)

func setUp() {
	db, mock, _ = sqlmock.New()
}

func tearDown() {
	db.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func testLoader() *Loader {
	return &Loader{
		db: db,
		cfg: &config.Config{
			OrdersTable:      "main_data",
			GeolocationTable: "geolocation",
		},
	}
}

func columnRows(names []string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"column_name"})
	for _, name := range names {
		rows.AddRow(name)
	}
	return rows
}

func TestCheckSchemaMismatch(t *testing.T) {
	it(func() {
		// review_score and payment_value are absent from the table.
		partial := columnRows(orderColumns[:len(orderColumns)-2])
		mock.ExpectQuery("SELECT column_name FROM information_schema.columns").
			WithArgs("main_data").
			WillReturnRows(partial)

		err := testLoader().checkSchema("main_data", orderColumns)
		if !errors.Is(err, models.ErrSchemaMismatch) {
			t.Errorf("Got error %v, want ErrSchemaMismatch", err)
		}
	})
}

func TestCheckSchemaComplete(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT column_name FROM information_schema.columns").
			WithArgs("geolocation").
			WillReturnRows(columnRows(geoColumns))

		if err := testLoader().checkSchema("geolocation", geoColumns); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})
}

func TestLoadDataset(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT column_name FROM information_schema.columns").
			WithArgs("main_data").
			WillReturnRows(columnRows(orderColumns))
		mock.ExpectQuery("SELECT column_name FROM information_schema.columns").
			WithArgs("geolocation").
			WillReturnRows(columnRows(geoColumns))

		purchased := time.Date(2017, 5, 10, 12, 0, 0, 0, time.UTC)
		delivered := time.Date(2017, 5, 20, 9, 30, 0, 0, time.UTC)
		orderRows := sqlmock.NewRows(orderColumns).
			AddRow("A", "c1", "u1", "p1", "toys", "s1", "sao paulo", "curitiba",
				1001, 3003, purchased, delivered, "150.75", 5).
			AddRow("B", "c2", "u2", "p2", nil, "s2", "rio de janeiro", "niteroi",
				2002, 4004, purchased, nil, "99.90", nil)
		mock.ExpectQuery("SELECT (.+) FROM main_data").WillReturnRows(orderRows)

		geoRows := sqlmock.NewRows(geoColumns).
			AddRow(1001, -23.55, -46.63).
			AddRow(1001, -23.56, -46.64)
		mock.ExpectQuery("SELECT (.+) FROM geolocation").WillReturnRows(geoRows)

		ds, err := testLoader().LoadDataset()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(ds.Orders) != 2 || len(ds.Geo) != 2 {
			t.Fatalf("Got %d orders and %d geo points, want 2 and 2", len(ds.Orders), len(ds.Geo))
		}

		first := ds.Orders[0]
		if first.OrderID != "A" || *first.ProductCategoryName != "toys" || *first.ReviewScore != 5 {
			t.Errorf("First order parsed wrong: %+v", first)
		}
		if first.OrderDeliveredCustomerDate == nil || !first.OrderDeliveredCustomerDate.Equal(delivered) {
			t.Errorf("First order delivery date parsed wrong: %+v", first.OrderDeliveredCustomerDate)
		}
		if first.PaymentValue.String() != "150.75" {
			t.Errorf("Got payment %s, want 150.75", first.PaymentValue)
		}

		second := ds.Orders[1]
		if second.ProductCategoryName != nil || second.ReviewScore != nil || second.OrderDeliveredCustomerDate != nil {
			t.Errorf("Nullable fields of second order should be nil: %+v", second)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Unmet expectations: %v", err)
		}
	})
}

func TestLoadDatasetStopsOnSchemaMismatch(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT column_name FROM information_schema.columns").
			WithArgs("main_data").
			WillReturnRows(columnRows([]string{"order_id"}))

		_, err := testLoader().LoadDataset()
		if !errors.Is(err, models.ErrSchemaMismatch) {
			t.Fatalf("Got error %v, want ErrSchemaMismatch", err)
		}
		// No table reads may happen after a schema mismatch.
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Unmet expectations: %v", err)
		}
	})
}
