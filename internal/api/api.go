// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/princevibe/books-backend/internal/api/handlers"
	"github.com/princevibe/books-backend/internal/api/middleware"
	"github.com/princevibe/books-backend/internal/service"
)

type Services struct {
	Reader  handlers.SnapshotReader
	Reports *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.Reader != nil {
		booksHandler := handlers.NewBooksHandler(services.Reader, services.Reports)

		apiGroup.GET("/inventory", booksHandler.GetInventory)
		apiGroup.GET("/purchases", booksHandler.GetPurchases)
		apiGroup.GET("/sales", booksHandler.GetSales)
		apiGroup.GET("/expenses", booksHandler.GetExpenses)
		apiGroup.GET("/partners", booksHandler.GetPartners)
		apiGroup.GET("/settings", booksHandler.GetSettings)

		gatewayGroup := apiGroup.Group("/gateway")
		{
			gatewayGroup.GET("/state", booksHandler.GetGatewayState)
			gatewayGroup.POST("/migrate", booksHandler.TriggerMigration)
		}

		if services.Reports != nil {
			reportHandler := handlers.NewReportHandler(services.Reports)
			apiGroup.GET("/reports/profit-loss", reportHandler.GetProfitLoss)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
