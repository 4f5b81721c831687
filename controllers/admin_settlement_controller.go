package controllers

import (
	"strconv"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/gin-gonic/gin"
)

// AdminListVendorOrders lists settlement ledger rows, optionally filtered
// by vendor or payout status.
func AdminListVendorOrders(c *gin.Context) {
	utils.LogInfo("AdminListVendorOrders called")

	query := config.DB.Model(&models.VendorOrder{}).Order("created_at DESC")
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status := c.Query("payout_status"); status != "" {
		query = query.Where("payout_status = ?", status)
	}

	var rows []models.VendorOrder
	if err := query.Find(&rows).Error; err != nil {
		utils.LogError("Failed to list vendor orders: %v", err)
		utils.InternalServerError(c, "Failed to list vendor orders", err.Error())
		return
	}

	utils.Success(c, "Vendor orders retrieved", gin.H{"vendor_orders": rows})
}

// AdminSyncSettlement re-runs settlement aggregation for one order.
func AdminSyncSettlement(c *gin.Context) {
	utils.LogInfo("AdminSyncSettlement called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	if err := settlementSvc.SyncFromOrder(uint(orderID)); err != nil {
		utils.LogError("Failed to sync settlement for order %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to sync settlement", err.Error())
		return
	}

	var rows []models.VendorOrder
	if err := config.DB.Where("order_id = ?", orderID).Find(&rows).Error; err != nil {
		utils.LogError("Failed to reload vendor orders: %v", err)
		utils.InternalServerError(c, "Failed to reload vendor orders", nil)
		return
	}

	utils.Success(c, "Settlement synced", gin.H{"vendor_orders": rows})
}

// AdminGetVendorBalance returns a vendor's current payable balance.
func AdminGetVendorBalance(c *gin.Context) {
	utils.LogInfo("AdminGetVendorBalance called")

	vendorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid vendor ID: %v", err)
		utils.BadRequest(c, "Invalid vendor ID", nil)
		return
	}

	balance, err := payoutSvc.AvailableBalance(uint(vendorID))
	if err != nil {
		utils.LogError("Failed to compute balance for vendor %d: %v", vendorID, err)
		utils.InternalServerError(c, "Failed to compute vendor balance", err.Error())
		return
	}

	utils.Success(c, "Vendor balance retrieved", gin.H{
		"vendor_id": vendorID,
		"balance":   balance,
	})
}
