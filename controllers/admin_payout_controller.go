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

// AdminCreatePayout creates a pending payout for a vendor's payable balance.
func AdminCreatePayout(c *gin.Context) {
	utils.LogInfo("AdminCreatePayout called")

	vendorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid vendor ID: %v", err)
		utils.BadRequest(c, "Invalid vendor ID", nil)
		return
	}

	var req struct {
		Amount *float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.LogError("Invalid payout request: %v", err)
		utils.BadRequest(c, "Invalid payout request", err.Error())
		return
	}

	payout, err := payoutSvc.CreatePendingPayout(uint(vendorID), req.Amount)
	if err != nil {
		utils.LogError("Failed to create payout for vendor %d: %v", vendorID, err)
		utils.InternalServerError(c, "Failed to create payout", err.Error())
		return
	}
	if payout == nil {
		utils.LogInfo("Vendor %d has no payable balance", vendorID)
		utils.Success(c, "Vendor has no payable balance", gin.H{"payout": nil})
		return
	}

	utils.Created(c, "Payout created", gin.H{
		"payout": gin.H{
			"id":       payout.ID,
			"amount":   payout.Amount,
			"status":   payout.Status,
			"provider": payout.Provider,
		},
	})
}

// AdminProcessPayout routes a pending or failed payout through its provider.
func AdminProcessPayout(c *gin.Context) {
	utils.LogInfo("AdminProcessPayout called")

	payoutID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid payout ID: %v", err)
		utils.BadRequest(c, "Invalid payout ID", nil)
		return
	}

	if err := payoutSvc.ProcessPayout(uint(payoutID)); err != nil {
		if errors.Is(err, services.ErrPayoutNotProcessable) {
			utils.LogError("Payout %d is not processable", payoutID)
			utils.Conflict(c, "Payout is not in a processable status", nil)
			return
		}
		utils.LogError("Failed to process payout %d: %v", payoutID, err)
		utils.InternalServerError(c, "Failed to process payout", err.Error())
		return
	}

	var payout models.VendorPayout
	if err := config.DB.First(&payout, payoutID).Error; err != nil {
		utils.LogError("Failed to reload payout %d: %v", payoutID, err)
		utils.InternalServerError(c, "Failed to reload payout", nil)
		return
	}

	utils.Success(c, "Payout processed", gin.H{
		"payout": gin.H{
			"id":                    payout.ID,
			"status":                payout.Status,
			"amount":                payout.Amount,
			"provider":              payout.Provider,
			"transaction_reference": payout.TransactionReference,
			"processed_at":          payout.ProcessedAt,
		},
	})
}

// AdminListPayouts lists payouts, optionally filtered by vendor or status.
func AdminListPayouts(c *gin.Context) {
	utils.LogInfo("AdminListPayouts called")

	query := config.DB.Model(&models.VendorPayout{}).Order("created_at DESC")
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payouts []models.VendorPayout
	if err := query.Find(&payouts).Error; err != nil {
		utils.LogError("Failed to list payouts: %v", err)
		utils.InternalServerError(c, "Failed to list payouts", err.Error())
		return
	}

	utils.Success(c, "Payouts retrieved", gin.H{"payouts": payouts})
}

// AdminRunPayoutSweep triggers the automatic payout sweep on demand.
func AdminRunPayoutSweep(c *gin.Context) {
	utils.LogInfo("AdminRunPayoutSweep called")

	paid, err := payoutSvc.ProcessAutomaticPayouts()
	if err != nil {
		utils.LogError("Payout sweep failed: %v", err)
		utils.InternalServerError(c, "Payout sweep failed", err.Error())
		return
	}

	utils.Success(c, "Payout sweep finished", gin.H{"vendors_paid": paid})
}
