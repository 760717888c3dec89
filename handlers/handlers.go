package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"commerce-dashboard/analytics"
	"commerce-dashboard/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the aggregates over the session dataset. The
// dataset is immutable, so every handler is safe for concurrent use.
type DashboardHandler struct {
	dataset *analytics.Dataset
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dataset *analytics.Dataset) *DashboardHandler {
	return &DashboardHandler{
		dataset: dataset,
	}
}

// HealthHandler handles health check requests
func (h *DashboardHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Message: "Commerce dashboard service is running",
		Service: "commerce-dashboard",
	})
}

// DateBoundsHandler returns the dataset's purchase timestamp bounds.
func (h *DashboardHandler) DateBoundsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.DateBoundsResponse{
		MinPurchase: h.dataset.MinPurchase(),
		MaxPurchase: h.dataset.MaxPurchase(),
	})
}

// MonthlyOrdersHandler returns per-month order counts and revenue for
// the selected range.
func (h *DashboardHandler) MonthlyOrdersHandler(c *gin.Context) {
	orders, ok := h.filteredOrders(c)
	if !ok {
		return
	}
	periods := analytics.MonthlyOrders(orders)
	c.JSON(http.StatusOK, models.PeriodsResponse{Periods: periods, Count: len(periods)})
}

// QuartalOrdersHandler returns the monthly aggregate resampled onto
// quarters.
func (h *DashboardHandler) QuartalOrdersHandler(c *gin.Context) {
	orders, ok := h.filteredOrders(c)
	if !ok {
		return
	}
	periods := analytics.QuarterlyOrders(orders)
	c.JSON(http.StatusOK, models.PeriodsResponse{Periods: periods, Count: len(periods)})
}

// SumProductsHandler returns the product category ranking.
func (h *DashboardHandler) SumProductsHandler(c *gin.Context) {
	orders, ok := h.filteredOrders(c)
	if !ok {
		return
	}
	categories := analytics.SumProducts(orders)
	c.JSON(http.StatusOK, models.CategoriesResponse{Categories: categories, Count: len(categories)})
}

// SumReviewsHandler returns the review score ranking. zero_fill=true
// appends scores absent from the data with a zero quantity.
func (h *DashboardHandler) SumReviewsHandler(c *gin.Context) {
	orders, ok := h.filteredOrders(c)
	if !ok {
		return
	}
	zeroFill := c.Query("zero_fill") == "true"
	reviews := analytics.SumReviews(orders, zeroFill)
	c.JSON(http.StatusOK, models.ReviewsResponse{Reviews: reviews, Count: len(reviews)})
}

// SpendingDistributionsHandler returns per-customer spending with the
// top five percent trimmed.
func (h *DashboardHandler) SpendingDistributionsHandler(c *gin.Context) {
	orders, ok := h.filteredOrders(c)
	if !ok {
		return
	}
	customers := analytics.SpendingDistribution(orders)
	c.JSON(http.StatusOK, models.SpendingResponse{Customers: customers, Count: len(customers)})
}

// CustomerGeolocationsHandler returns the geolocation points of the
// selected range's customers, raw or clustered.
func (h *DashboardHandler) CustomerGeolocationsHandler(c *gin.Context) {
	orders, ok := h.filteredOrders(c)
	if !ok {
		return
	}
	h.geolocationsResponse(c, h.dataset.CustomerGeolocations(orders))
}

// SellerGeolocationsHandler returns the geolocation points of the
// selected range's sellers, raw or clustered.
func (h *DashboardHandler) SellerGeolocationsHandler(c *gin.Context) {
	orders, ok := h.filteredOrders(c)
	if !ok {
		return
	}
	h.geolocationsResponse(c, h.dataset.SellerGeolocations(orders))
}

func (h *DashboardHandler) geolocationsResponse(c *gin.Context, points []models.GeoPoint) {
	if c.Query("clustered") == "true" {
		clusters := analytics.ClusterGeolocations(points)
		c.JSON(http.StatusOK, models.GeolocationsResponse{Clusters: clusters, Count: len(clusters)})
		return
	}
	c.JSON(http.StatusOK, models.GeolocationsResponse{Points: points, Count: len(points)})
}

// CityRankingHandler returns the city ranking for by=customer (default)
// or by=seller, with the maximal cities flagged for highlighting.
func (h *DashboardHandler) CityRankingHandler(c *gin.Context) {
	var key analytics.CityRankingKey
	switch c.DefaultQuery("by", "customer") {
	case "customer":
		key = analytics.RankCustomerCities
	case "seller":
		key = analytics.RankSellerCities
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "by must be customer or seller"})
		return
	}

	orders, ok := h.filteredOrders(c)
	if !ok {
		return
	}
	cities, top := analytics.CityRanking(orders, key)
	c.JSON(http.StatusOK, models.CityRankingResponse{Cities: cities, TopCities: top, Count: len(cities)})
}

var rangeParams = []string{"start_month", "start_year", "end_month", "end_year"}

// filteredOrders applies the date range selection from the query
// parameters. All four parameters must be present together; with none
// of them the full dataset is returned. On a malformed selection the
// response is written and ok is false.
func (h *DashboardHandler) filteredOrders(c *gin.Context) ([]models.OrderRecord, bool) {
	values := make([]int, 0, len(rangeParams))
	missing := 0
	for _, name := range rangeParams {
		raw := c.Query(name)
		if raw == "" {
			missing++
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a valid integer"})
			return nil, false
		}
		values = append(values, v)
	}
	if missing == len(rangeParams) {
		return h.dataset.Orders, true
	}
	if missing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_month, start_year, end_month and end_year must be given together"})
		return nil, false
	}

	orders, err := analytics.FilterByDateRange(h.dataset.Orders, values[0], values[1], values[2], values[3])
	if err != nil {
		if errors.Is(err, models.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
		log.Errorf("Failed to filter orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return nil, false
	}
	return orders, true
}
