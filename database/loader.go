package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"commerce-dashboard/analytics"
	"commerce-dashboard/config"
	"commerce-dashboard/models"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
)

// Column sets the source tables must provide. A missing column is a
// fatal schema mismatch; nothing is loaded.
var (
	orderColumns = []string{
		"order_id",
		"customer_id",
		"customer_unique_id",
		"product_id",
		"product_category_name",
		"seller_id",
		"customer_city",
		"seller_city",
		"customer_zip_code_prefix",
		"seller_zip_code_prefix",
		"order_purchase_timestamp",
		"order_delivered_customer_date",
		"payment_value",
		"review_score",
	}
	geoColumns = []string{
		"geolocation_zip_code_prefix",
		"geolocation_lat",
		"geolocation_lng",
	}
)

// Loader reads the transaction and geolocation tables into an in-memory
// dataset. It is used once at startup; the connection can be closed
// after LoadDataset returns.
type Loader struct {
	db  *sql.DB
	cfg *config.Config
}

// NewLoader connects to MySQL using the config parameters.
func NewLoader(cfg *config.Config) (*Loader, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection with exponential backoff retry.
	deadline := time.Now().Add(60 * time.Second)
	waitInterval := time.Second
	for {
		pingErr := db.Ping()
		if pingErr == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database ping timeout: %w", pingErr)
		}
		log.Warnf("Database connection failed, retrying in %v: %v", waitInterval, pingErr)
		time.Sleep(waitInterval)
		waitInterval *= 2
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Infof("Database connection established to %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)

	return &Loader{db: db, cfg: cfg}, nil
}

// Close closes the database connection
func (l *Loader) Close() error {
	return l.db.Close()
}

// LoadDataset validates both source tables and reads them whole. The
// returned dataset is the immutable snapshot every aggregation runs
// over for the rest of the session.
func (l *Loader) LoadDataset() (*analytics.Dataset, error) {
	if err := l.checkSchema(l.cfg.OrdersTable, orderColumns); err != nil {
		return nil, err
	}
	if err := l.checkSchema(l.cfg.GeolocationTable, geoColumns); err != nil {
		return nil, err
	}

	orders, err := l.loadOrders()
	if err != nil {
		return nil, err
	}
	geo, err := l.loadGeolocations()
	if err != nil {
		return nil, err
	}

	log.Infof("Loaded %d order line items and %d geolocation points", len(orders), len(geo))
	return analytics.NewDataset(orders, geo), nil
}

// checkSchema compares the table's columns against the required set.
func (l *Loader) checkSchema(table string, required []string) error {
	rows, err := l.db.Query(`
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?`, table)
	if err != nil {
		return fmt.Errorf("failed to read schema of %s: %w", table, err)
	}
	defer rows.Close()

	present := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan schema row: %w", err)
		}
		present[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read schema of %s: %w", table, err)
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: table %s is missing columns %s",
			models.ErrSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return nil
}

func (l *Loader) loadOrders() ([]models.OrderRecord, error) {
	query := fmt.Sprintf(`
		SELECT order_id, customer_id, customer_unique_id, product_id,
			product_category_name, seller_id, customer_city, seller_city,
			customer_zip_code_prefix, seller_zip_code_prefix,
			order_purchase_timestamp, order_delivered_customer_date,
			payment_value, review_score
		FROM %s`, l.cfg.OrdersTable)

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", l.cfg.OrdersTable, err)
	}
	defer rows.Close()

	var orders []models.OrderRecord
	for rows.Next() {
		var r models.OrderRecord
		var category sql.NullString
		var delivered sql.NullTime
		var score sql.NullInt64

		err := rows.Scan(
			&r.OrderID,
			&r.CustomerID,
			&r.CustomerUniqueID,
			&r.ProductID,
			&category,
			&r.SellerID,
			&r.CustomerCity,
			&r.SellerCity,
			&r.CustomerZipCodePrefix,
			&r.SellerZipCodePrefix,
			&r.OrderPurchaseTimestamp,
			&delivered,
			&r.PaymentValue,
			&score,
		)
		if err != nil {
			// A scan failure on a validated column set means the
			// column type does not match.
			return nil, fmt.Errorf("%w: scanning %s: %v", models.ErrSchemaMismatch, l.cfg.OrdersTable, err)
		}

		if category.Valid {
			r.ProductCategoryName = &category.String
		}
		if delivered.Valid {
			t := delivered.Time
			r.OrderDeliveredCustomerDate = &t
			if r.OrderPurchaseTimestamp.After(t) {
				// Kept in the dataset; the source guarantees this
				// ordering so a violation points at bad source data.
				log.Warnf("Order %s delivered %v before purchase %v",
					r.OrderID, t, r.OrderPurchaseTimestamp)
			}
		}
		if score.Valid {
			s := int(score.Int64)
			r.ReviewScore = &s
		}
		orders = append(orders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.cfg.OrdersTable, err)
	}
	return orders, nil
}

func (l *Loader) loadGeolocations() ([]models.GeoPoint, error) {
	query := fmt.Sprintf(`
		SELECT geolocation_zip_code_prefix, geolocation_lat, geolocation_lng
		FROM %s`, l.cfg.GeolocationTable)

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", l.cfg.GeolocationTable, err)
	}
	defer rows.Close()

	var points []models.GeoPoint
	for rows.Next() {
		var p models.GeoPoint
		if err := rows.Scan(&p.ZipCodePrefix, &p.Latitude, &p.Longitude); err != nil {
			return nil, fmt.Errorf("%w: scanning %s: %v", models.ErrSchemaMismatch, l.cfg.GeolocationTable, err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.cfg.GeolocationTable, err)
	}
	return points, nil
}
