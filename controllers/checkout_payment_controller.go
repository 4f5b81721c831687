package controllers

import (
	"errors"
	"strconv"

	"github.com/Rahul-714/MarketNest/gateway"
	"github.com/Rahul-714/MarketNest/services"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/gin-gonic/gin"
)

// PayOrder charges an order's payment. Checkout calls this once the order
// has been placed; re-attempts reuse the same payment record.
func PayOrder(c *gin.Context) {
	utils.LogInfo("PayOrder called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	payment, err := checkoutSvc.PayOrder(uint(orderID), "checkout")
	if err != nil {
		if errors.Is(err, gateway.ErrUnsupportedGateway) {
			utils.LogError("Unsupported payment method for order %d: %v", orderID, err)
			utils.BadRequest(c, "Unsupported payment method", err.Error())
			return
		}
		if errors.Is(err, services.ErrTransitionNotAllowed) {
			utils.LogError("Payment for order %d is not chargeable: %v", orderID, err)
			utils.Conflict(c, "Payment is not in a chargeable state", nil)
			return
		}
		utils.LogError("Failed to process payment for order %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to process payment", err.Error())
		return
	}

	utils.Success(c, "Payment processed", gin.H{
		"payment": gin.H{
			"id":             payment.ID,
			"uuid":           payment.UUID,
			"status":         payment.Status,
			"amount":         payment.Amount,
			"transaction_id": payment.TransactionID,
		},
	})
}
