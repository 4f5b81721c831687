package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// AdminDownloadPayoutReceipt generates a PDF receipt for a completed payout.
func AdminDownloadPayoutReceipt(c *gin.Context) {
	utils.LogInfo("AdminDownloadPayoutReceipt called")

	payoutID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid payout ID: %v", err)
		utils.BadRequest(c, "Invalid payout ID", nil)
		return
	}

	var payout models.VendorPayout
	if err := config.DB.Preload("Vendor").First(&payout, payoutID).Error; err != nil {
		utils.LogError("Payout not found: %v", err)
		utils.NotFound(c, "Payout not found")
		return
	}

	if payout.Status != models.VendorPayoutCompleted {
		utils.LogError("Receipt requested for non-completed payout %d (%s)", payout.ID, payout.Status)
		utils.Conflict(c, "Receipt is only available for completed payouts", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "MarketNest")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Marketplace Vendor Settlements")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PAYOUT RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Payout ID: "+strconv.Itoa(int(payout.ID)))
	pdf.Cell(80, 8, "Date: "+payout.ProcessedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(60, 8, "Provider: "+payout.Provider)
	pdf.Cell(80, 8, "Reference: "+payout.TransactionReference)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Paid To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, payout.Vendor.StoreName)
	pdf.Ln(6)
	pdf.Cell(100, 8, payout.Vendor.Email)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(60, 10, "Amount Paid:")
	pdf.Cell(60, 10, fmt.Sprintf("%.2f", payout.Amount))
	pdf.Ln(10)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate receipt PDF: %v", err)
		utils.InternalServerError(c, "Failed to generate receipt", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payout_receipt_%d.pdf", payout.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	utils.LogInfo("Generated receipt for payout %d", payout.ID)
}
