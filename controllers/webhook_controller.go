package controllers

import (
	"errors"

	"github.com/Rahul-714/MarketNest/gateway"
	"github.com/Rahul-714/MarketNest/services"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/gin-gonic/gin"
)

// HandleGatewayWebhook receives provider webhooks. The driver verifies the
// signature before the payload is parsed; unmatched events are accepted so
// duplicate or unrelated deliveries never error.
func HandleGatewayWebhook(c *gin.Context) {
	method := c.Param("method")
	utils.LogInfo("Webhook received for method: %s", method)

	driver, err := gatewayFactory.Resolve(method)
	if err != nil {
		utils.LogError("Webhook for unknown gateway: %s", method)
		utils.NotFound(c, "Unknown payment gateway")
		return
	}

	event, err := driver.HandleWebhook(c.Request)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidSignature) {
			utils.LogError("Webhook signature verification failed for %s", method)
			utils.Unauthorized(c, "Invalid webhook signature")
			return
		}
		utils.LogError("Failed to parse webhook for %s: %v", method, err)
		utils.BadRequest(c, "Malformed webhook", err.Error())
		return
	}

	if err := paymentSvc.HandleWebhook(method, event); err != nil {
		if errors.Is(err, services.ErrGatewayMismatch) {
			utils.LogError("Webhook provider mismatch for %s", method)
			utils.BadRequest(c, "Webhook provider does not match payment", nil)
			return
		}
		// Out-of-order deliveries (a late pending event after completion)
		// are guard rejections, not faults. Accept them so the provider
		// stops redelivering.
		if errors.Is(err, services.ErrTransitionNotAllowed) {
			utils.LogInfo("Webhook for %s arrived out of order, skipping", method)
			utils.Success(c, "Webhook processed", nil)
			return
		}
		utils.LogError("Failed to apply webhook for %s: %v", method, err)
		utils.InternalServerError(c, "Failed to apply webhook", err.Error())
		return
	}

	// A completed payment may have just marked the order paid; advance it
	// and refresh the settlement ledger. Replays fall through harmlessly.
	if payment, err := paymentSvc.FindByKeys(event.TransactionID, event.PaymentUUID); err == nil && payment != nil {
		if err := checkoutSvc.FinalizePaidOrder(payment.OrderID, "webhook:"+method); err != nil {
			utils.LogError("Failed to finalize order %d after webhook: %v", payment.OrderID, err)
			utils.InternalServerError(c, "Failed to finalize order", err.Error())
			return
		}
	}

	utils.Success(c, "Webhook processed", nil)
}
