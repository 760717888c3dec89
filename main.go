package main

import (
	"time"

	"commerce-dashboard/config"
	"commerce-dashboard/database"
	"commerce-dashboard/handlers"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	EndPointHealth                = "/health"
	EndPointDateBounds            = "/date_bounds"
	EndPointMonthlyOrders         = "/monthly_orders"
	EndPointQuartalOrders         = "/quartal_orders"
	EndPointSumProducts           = "/sum_products"
	EndPointSumReviews            = "/sum_reviews"
	EndPointSpendingDistributions = "/spending_distributions"
	EndPointCustomerGeolocations  = "/customer_geolocations"
	EndPointSellerGeolocations    = "/seller_geolocations"
	EndPointCityRanking           = "/city_ranking"
)

func main() {
	cfg := config.Load()

	loader, err := database.NewLoader(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// The dataset is loaded once per session; the connection is not
	// needed afterwards.
	dataset, err := loader.LoadDataset()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	loader.Close()

	handler := handlers.NewDashboardHandler(dataset)
	router := setupRouter(handler)

	log.Infof("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Host + ":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(handler *handlers.DashboardHandler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET(EndPointHealth, handler.HealthHandler)
	router.GET(EndPointDateBounds, handler.DateBoundsHandler)
	router.GET(EndPointMonthlyOrders, handler.MonthlyOrdersHandler)
	router.GET(EndPointQuartalOrders, handler.QuartalOrdersHandler)
	router.GET(EndPointSumProducts, handler.SumProductsHandler)
	router.GET(EndPointSumReviews, handler.SumReviewsHandler)
	router.GET(EndPointSpendingDistributions, handler.SpendingDistributionsHandler)
	router.GET(EndPointCustomerGeolocations, handler.CustomerGeolocationsHandler)
	router.GET(EndPointSellerGeolocations, handler.SellerGeolocationsHandler)
	router.GET(EndPointCityRanking, handler.CityRankingHandler)

	return router
}
