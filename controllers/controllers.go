package controllers

import (
	"github.com/Rahul-714/MarketNest/gateway"
	"github.com/Rahul-714/MarketNest/services"
	"gorm.io/gorm"
)

var (
	gatewayFactory *gateway.Factory
	orderStatusSvc *services.OrderStatusService
	paymentSvc     *services.PaymentService
	settlementSvc  *services.SettlementService
	payoutSvc      *services.PayoutService
	checkoutSvc    *services.CheckoutService
)

// Init wires the engines the controllers dispatch into. Called once at
// startup after the database is ready.
func Init(db *gorm.DB, factory *gateway.Factory) {
	gatewayFactory = factory
	settings := services.DBSettingsLoader(db)

	orderStatusSvc = services.NewOrderStatusService(db)
	paymentSvc = services.NewPaymentService(db, factory)
	settlementSvc = services.NewSettlementService(db, settings)
	payoutSvc = services.NewPayoutService(db, factory, settings)
	checkoutSvc = services.NewCheckoutService(db, paymentSvc, orderStatusSvc, settlementSvc)
}

// PayoutService exposes the payout engine for the scheduler in main.
func PayoutService() *services.PayoutService {
	return payoutSvc
}
