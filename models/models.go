package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is one line item of the transaction dataset: one row per
// (order, item) pair. An order with several items appears as several
// records sharing the same OrderID.
type OrderRecord struct {
	OrderID                    string          `json:"order_id"`
	CustomerID                 string          `json:"customer_id"`
	CustomerUniqueID           string          `json:"customer_unique_id"`
	ProductID                  string          `json:"product_id"`
	ProductCategoryName        *string         `json:"product_category_name,omitempty"`
	SellerID                   string          `json:"seller_id"`
	CustomerCity               string          `json:"customer_city"`
	SellerCity                 string          `json:"seller_city"`
	CustomerZipCodePrefix      int             `json:"customer_zip_code_prefix"`
	SellerZipCodePrefix        int             `json:"seller_zip_code_prefix"`
	OrderPurchaseTimestamp     time.Time       `json:"order_purchase_timestamp"`
	OrderDeliveredCustomerDate *time.Time      `json:"order_delivered_customer_date,omitempty"`
	PaymentValue               decimal.Decimal `json:"payment_value"`
	ReviewScore                *int            `json:"review_score,omitempty"`
}

// GeoPoint is one row of the geolocation reference table. A zip code
// prefix may map to several points.
type GeoPoint struct {
	ZipCodePrefix int     `json:"zip_code_prefix"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// PeriodSummary is one month or one quarter of order activity.
type PeriodSummary struct {
	Period     string          `json:"period"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// CategorySummary counts distinct products sold per category.
type CategorySummary struct {
	ProductCategoryName string `json:"product_category_name"`
	Quantity            int    `json:"quantity"`
}

// ReviewSummary counts distinct orders per review score.
type ReviewSummary struct {
	ReviewScore int `json:"review_score"`
	Quantity    int `json:"quantity"`
}

// CitySummary counts distinct customers or sellers per city.
type CitySummary struct {
	City     string `json:"city"`
	Quantity int    `json:"quantity"`
}

// SpendingRecord sums one customer's payments across the selected range.
type SpendingRecord struct {
	CustomerUniqueID string          `json:"customer_unique_id"`
	LastPurchase     time.Time       `json:"last_purchase"`
	TotalSpending    decimal.Decimal `json:"total_spending"`
}

// ClusterPoint is a bucket of nearby geolocation points for map display.
type ClusterPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int64   `json:"count"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Service string `json:"service,omitempty"`
}

// DateBoundsResponse carries the purchase timestamp bounds of the loaded
// dataset, used by the presentation layer to seed its date pickers.
type DateBoundsResponse struct {
	MinPurchase time.Time `json:"min_purchase"`
	MaxPurchase time.Time `json:"max_purchase"`
}

// PeriodsResponse is the payload of the monthly and quartal endpoints.
type PeriodsResponse struct {
	Periods []PeriodSummary `json:"periods"`
	Count   int             `json:"count"`
}

// CategoriesResponse is the payload of the product category ranking.
type CategoriesResponse struct {
	Categories []CategorySummary `json:"categories"`
	Count      int               `json:"count"`
}

// ReviewsResponse is the payload of the review score ranking.
type ReviewsResponse struct {
	Reviews []ReviewSummary `json:"reviews"`
	Count   int             `json:"count"`
}

// SpendingResponse is the payload of the spending distribution endpoint.
type SpendingResponse struct {
	Customers []SpendingRecord `json:"customers"`
	Count     int              `json:"count"`
}

// GeolocationsResponse carries either raw reference points or clustered
// buckets, depending on the request.
type GeolocationsResponse struct {
	Points   []GeoPoint     `json:"points,omitempty"`
	Clusters []ClusterPoint `json:"clusters,omitempty"`
	Count    int            `json:"count"`
}

// CityRankingResponse carries the ranked cities plus the cities that
// attain the maximum quantity, for downstream highlighting.
type CityRankingResponse struct {
	Cities    []CitySummary `json:"cities"`
	TopCities []string      `json:"top_cities"`
	Count     int           `json:"count"`
}
