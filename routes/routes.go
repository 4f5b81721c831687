package routes

import (
	"github.com/Rahul-714/MarketNest/controllers"
	"github.com/Rahul-714/MarketNest/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1")
	{
		// Provider webhooks are unauthenticated; each driver verifies its
		// own signature before the payload is touched.
		api.POST("/webhooks/:method", controllers.HandleGatewayWebhook)

		// Checkout completion boundary
		api.POST("/checkout/orders/:id/pay", controllers.PayOrder)

		api.POST("/admin/login", controllers.AdminLogin)

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/orders/:id/statuses", controllers.AdminGetOrderStatuses)
			admin.PUT("/orders/:id/status", controllers.AdminUpdateOrderStatus)
			admin.POST("/orders/:id/settlement/sync", controllers.AdminSyncSettlement)

			admin.GET("/payments/:id", controllers.AdminGetPayment)
			admin.PUT("/payments/:id/status", controllers.AdminUpdatePaymentStatus)
			admin.POST("/payments/:id/refund", controllers.AdminRefundPayment)

			admin.GET("/settlements", controllers.AdminListVendorOrders)
			admin.GET("/settlements/report", controllers.AdminDownloadSettlementReport)

			admin.GET("/vendors/:id/balance", controllers.AdminGetVendorBalance)
			admin.POST("/vendors/:id/payouts", controllers.AdminCreatePayout)

			admin.GET("/payouts", controllers.AdminListPayouts)
			admin.POST("/payouts/:id/process", controllers.AdminProcessPayout)
			admin.GET("/payouts/:id/receipt", controllers.AdminDownloadPayoutReceipt)
			admin.POST("/payouts/sweep", controllers.AdminRunPayoutSweep)
		}
	}

	return router
}
