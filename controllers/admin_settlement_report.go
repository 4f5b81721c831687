package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
)

// AdminDownloadSettlementReport exports the settlement ledger as Excel.
func AdminDownloadSettlementReport(c *gin.Context) {
	utils.LogInfo("AdminDownloadSettlementReport called")

	period := c.DefaultQuery("period", "month")
	utils.LogDebug("Generating settlement report for period: %s", period)

	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = startDate.Add(24 * time.Hour)
	case "week":
		endDate = now.Add(24 * time.Hour)
		startDate = now.AddDate(0, 0, -6).Truncate(24 * time.Hour)
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var rows []models.VendorOrder
	query := config.DB.Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Preload("Vendor").
		Order("created_at DESC")
	if err := query.Find(&rows).Error; err != nil {
		utils.LogError("Failed to fetch vendor orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch vendor orders", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d ledger rows for settlement report", len(rows))

	var summary struct {
		TotalRows       int
		TotalSubtotal   float64
		TotalCommission float64
		TotalEarnings   float64
		PendingEarnings float64
		PaidEarnings    float64
	}
	for _, row := range rows {
		summary.TotalRows++
		summary.TotalSubtotal += row.Subtotal
		summary.TotalCommission += row.CommissionAmount
		summary.TotalEarnings += row.VendorEarnings
		if row.PayoutStatus == models.PayoutStatusPaid {
			summary.PaidEarnings += row.VendorEarnings
		} else {
			summary.PendingEarnings += row.VendorEarnings
		}
	}
	summary.TotalSubtotal = utils.Round2(summary.TotalSubtotal)
	summary.TotalCommission = utils.Round2(summary.TotalCommission)
	summary.TotalEarnings = utils.Round2(summary.TotalEarnings)
	summary.PendingEarnings = utils.Round2(summary.PendingEarnings)
	summary.PaidEarnings = utils.Round2(summary.PaidEarnings)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Settlement Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("MARKETNEST - Vendor Settlement Report")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " +
		startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Vendor ID", "Vendor", "Order ID", "Date", "Subtotal", "Commission", "Earnings", "Payout Status", "Shipping Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().SetInt(int(row.VendorID))
		r.AddCell().SetString(row.Vendor.StoreName)
		r.AddCell().SetInt(int(row.OrderID))
		r.AddCell().SetString(row.CreatedAt.Format("2006-01-02 15:04"))
		r.AddCell().SetFloat(row.Subtotal)
		r.AddCell().SetFloat(row.CommissionAmount)
		r.AddCell().SetFloat(row.VendorEarnings)
		r.AddCell().SetString(row.PayoutStatus)
		r.AddCell().SetString(row.ShippingStatus)
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Ledger Rows", fmt.Sprintf("%d", summary.TotalRows)},
		{"Total Subtotal", fmt.Sprintf("%.2f", summary.TotalSubtotal)},
		{"Total Commission", fmt.Sprintf("%.2f", summary.TotalCommission)},
		{"Total Vendor Earnings", fmt.Sprintf("%.2f", summary.TotalEarnings)},
		{"Pending Earnings", fmt.Sprintf("%.2f", summary.PendingEarnings)},
		{"Paid Earnings", fmt.Sprintf("%.2f", summary.PaidEarnings)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=settlement_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated settlement report for period %s", period)
}
