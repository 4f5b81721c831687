package controllers

import (
	"errors"
	"strconv"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/services"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/gin-gonic/gin"
)

// AdminGetPayment returns a payment with its audit trail.
func AdminGetPayment(c *gin.Context) {
	utils.LogInfo("AdminGetPayment called")

	paymentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid payment ID: %v", err)
		utils.BadRequest(c, "Invalid payment ID", nil)
		return
	}

	var payment models.Payment
	if err := config.DB.First(&payment, paymentID).Error; err != nil {
		utils.LogError("Payment not found: %v", err)
		utils.NotFound(c, "Payment not found")
		return
	}

	utils.Success(c, "Payment retrieved", gin.H{"payment": payment})
}

// AdminUpdatePaymentStatus applies a guarded payment transition. Offline
// methods settle through here: an operator completes a cash-on-delivery
// payment once the courier confirms collection, or fails it.
func AdminUpdatePaymentStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdatePaymentStatus called")

	admin, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}
	adminModel := admin.(models.Admin)

	paymentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid payment ID: %v", err)
		utils.BadRequest(c, "Invalid payment ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		utils.LogError("Invalid status in request: %v", err)
		utils.BadRequest(c, "Status is required", nil)
		return
	}
	utils.LogDebug("Requested payment status update to: %s by %s", req.Status, adminModel.Email)

	if err := paymentSvc.ChangeStatus(uint(paymentID), req.Status, adminModel.Email, req.Note); err != nil {
		if errors.Is(err, services.ErrTransitionNotAllowed) {
			var payment models.Payment
			available := []string{}
			if err := config.DB.First(&payment, paymentID).Error; err == nil {
				available = services.AllowedNextPaymentStatuses(payment.Status)
			}
			utils.LogError("Transition to %s rejected for payment %d", req.Status, paymentID)
			utils.BadRequest(c, "Status transition not allowed", gin.H{
				"available_statuses": available,
			})
			return
		}
		utils.LogError("Failed to update payment %d status: %v", paymentID, err)
		utils.InternalServerError(c, "Failed to update payment status", err.Error())
		return
	}

	// Completing a payment may have just marked the order paid; advance it
	// and refresh the settlement ledger.
	var payment models.Payment
	if err := config.DB.First(&payment, paymentID).Error; err != nil {
		utils.LogError("Failed to reload payment %d: %v", paymentID, err)
		utils.InternalServerError(c, "Failed to reload payment", nil)
		return
	}
	if err := checkoutSvc.FinalizePaidOrder(payment.OrderID, adminModel.Email); err != nil {
		utils.LogError("Failed to finalize order %d after payment status change: %v", payment.OrderID, err)
		utils.InternalServerError(c, "Failed to finalize order", err.Error())
		return
	}

	utils.LogInfo("Successfully updated payment %d status to %s", paymentID, payment.Status)
	utils.Success(c, "Payment status updated successfully", gin.H{
		"payment": gin.H{
			"id":             payment.ID,
			"status":         payment.Status,
			"amount":         payment.Amount,
			"payment_date":   payment.PaymentDate,
			"transaction_id": payment.TransactionID,
		},
	})
}

// AdminRefundPayment refunds part or all of a completed payment.
func AdminRefundPayment(c *gin.Context) {
	utils.LogInfo("AdminRefundPayment called")

	admin, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}
	adminModel := admin.(models.Admin)

	paymentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid payment ID: %v", err)
		utils.BadRequest(c, "Invalid payment ID", nil)
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid refund request: %v", err)
		utils.BadRequest(c, "Refund amount is required", err.Error())
		return
	}

	if err := paymentSvc.Refund(uint(paymentID), req.Amount, adminModel.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrRefundNotAllowed):
			utils.LogError("Payment %d is not refundable", paymentID)
			utils.Conflict(c, "Payment is not in a refundable status", nil)
		case errors.Is(err, services.ErrInvalidRefundAmount):
			utils.LogError("Invalid refund amount %.2f for payment %d", req.Amount, paymentID)
			utils.ValidationError(c, "Invalid refund amount", nil)
		default:
			utils.LogError("Failed to refund payment %d: %v", paymentID, err)
			utils.InternalServerError(c, "Failed to refund payment", err.Error())
		}
		return
	}

	var payment models.Payment
	if err := config.DB.First(&payment, paymentID).Error; err != nil {
		utils.LogError("Failed to reload payment %d: %v", paymentID, err)
		utils.InternalServerError(c, "Failed to reload payment", nil)
		return
	}

	utils.LogInfo("Refund of %.2f applied to payment %d by %s", req.Amount, paymentID, adminModel.Email)
	utils.Success(c, "Refund processed", gin.H{
		"payment": gin.H{
			"id":            payment.ID,
			"status":        payment.Status,
			"amount":        payment.Amount,
			"refund_amount": payment.RefundAmount,
			"refund_date":   payment.RefundDate,
		},
	})
}
