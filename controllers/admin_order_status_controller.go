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

// AdminUpdateOrderStatus applies a guarded fulfillment transition to an order.
func AdminUpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdateOrderStatus called")

	admin, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return
	}
	adminModel, ok := admin.(models.Admin)
	if !ok {
		utils.LogError("Invalid admin type in context")
		utils.InternalServerError(c, "Invalid admin type", nil)
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		utils.LogError("Invalid status in request: %v", err)
		utils.BadRequest(c, "Status is required", nil)
		return
	}
	utils.LogDebug("Requested status update to: %s by %s", req.Status, adminModel.Email)

	if err := orderStatusSvc.ChangeStatus(uint(orderID), req.Status, adminModel.Email); err != nil {
		if errors.Is(err, services.ErrTransitionNotAllowed) {
			var order models.Order
			available := []string{}
			if err := config.DB.First(&order, orderID).Error; err == nil {
				available = orderStatusSvc.AvailableStatuses(&order)
			}
			utils.LogError("Transition to %s rejected for order %d", req.Status, orderID)
			utils.BadRequest(c, "Status transition not allowed", gin.H{
				"available_statuses": available,
			})
			return
		}
		utils.LogError("Failed to update order %d status: %v", orderID, err)
		utils.InternalServerError(c, "Failed to update order status", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.LogError("Failed to reload order %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to reload order", nil)
		return
	}

	utils.LogInfo("Successfully updated order %d status to %s", orderID, order.Status)
	utils.Success(c, "Order status updated successfully", gin.H{
		"order": gin.H{
			"id":             order.ID,
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
			"shipped_at":     order.ShippedAt,
			"delivered_at":   order.DeliveredAt,
			"cancelled_at":   order.CancelledAt,
		},
	})
}

// AdminGetOrderStatuses lists the order's current status, the transitions
// available from it, and the full status set.
func AdminGetOrderStatuses(c *gin.Context) {
	utils.LogInfo("AdminGetOrderStatuses called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.LogError("Order not found: %v", err)
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order statuses retrieved", gin.H{
		"current":            order.Status,
		"available_statuses": orderStatusSvc.AvailableStatuses(&order),
		"all_statuses":       orderStatusSvc.AllStatuses(),
	})
}
