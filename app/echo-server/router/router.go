package router

import (
	"pricedeck/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired, adminOnly, selfOrAdmin echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, selfOrAdmin)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, selfOrAdmin)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts, authRequired)
	products.GET("/:id", handler.GetProductByID, authRequired)
	products.GET("/sku/:sku", handler.GetProductBySKU, authRequired)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupCompetitorRoutes(api *echo.Group, handler *rest.CompetitorHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	prices := api.Group("/competitor-prices")

	prices.GET("", handler.GetAllCompetitorPrices, authRequired)
	prices.GET("/sku/:sku", handler.GetCompetitorPriceBySKU, authRequired)
	prices.POST("", handler.CreateCompetitorPrice, authRequired, adminOnly)
	prices.PUT("/:id", handler.UpdateCompetitorPrice, authRequired, adminOnly)
	prices.DELETE("/:id", handler.DeleteCompetitorPrice, authRequired, adminOnly)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.GET("", handler.GetAllOrderLines)
	orders.GET("/sku/:sku", handler.GetOrderLinesBySKU)
	orders.POST("", handler.CreateOrderLine)
}

func SetupIngestRoutes(api *echo.Group, handler *rest.IngestHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	imports := api.Group("/import", authRequired, adminOnly)

	imports.POST("/products", handler.ImportProducts)
	imports.POST("/competitor-prices", handler.ImportCompetitorPrices)
	imports.POST("/orders", handler.ImportOrders)
}

func SetupPricingRoutes(api *echo.Group, handler *rest.PricingHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.GetRecommendations)
	reco.GET("/feature-importance", handler.GetFeatureImportance)
	reco.GET("/:sku", handler.GetRecommendationBySKU)
	reco.DELETE("/cache", handler.InvalidateCache, adminOnly)
}

func SetupApprovalsRoutes(api *echo.Group, handler *rest.ApprovalsHandler, authRequired echo.MiddlewareFunc) {
	approvals := api.Group("/approvals", authRequired)

	approvals.POST("/refresh", handler.RefreshApprovals)
	approvals.GET("/pending", handler.GetPendingApprovals)
	approvals.GET("/history", handler.GetApprovalHistory)
	approvals.GET("/stats", handler.GetWorkflowStats)
	approvals.POST("/:id/approve", handler.ApproveRecommendation)
	approvals.POST("/:id/reject", handler.RejectRecommendation)
}

func SetupAlertsRoutes(api *echo.Group, handler *rest.AlertsHandler, authRequired echo.MiddlewareFunc) {
	alerts := api.Group("/alerts", authRequired)

	alerts.GET("", handler.GetAlerts)
}

func SetupInsightsRoutes(api *echo.Group, handler *rest.InsightsHandler, authRequired echo.MiddlewareFunc) {
	insights := api.Group("/insights", authRequired)

	insights.GET("/categories", handler.GetCategoryPerformance)
	insights.GET("/elasticity", handler.GetTierElasticities)
}
