package possync

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"bitbucket.org/mmdatafocus/possync_backend/models"
)

// ExportDashboard renders yesterday's dashboard and its payment rows as an
// xlsx workbook.
func (a *Aggregator) ExportDashboard(ctx context.Context, user *models.User, restaurant *models.Restaurant, today time.Time) (*excelize.File, error) {
	window, err := RestaurantYesterdayWindow(restaurant, today)
	if err != nil {
		return nil, err
	}
	summary, err := a.Summarize(ctx, user, restaurant, today)
	if err != nil {
		return nil, err
	}
	rows, err := a.reports.DashboardRows(ctx, restaurant.ID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	summarySheet := "Summary"
	file.SetSheetName(file.GetSheetName(0), summarySheet)

	setCells(file, summarySheet, [][]any{
		{"Restaurant", restaurant.Name},
		{"Business Day", summary.Date},
		{"Window Start", window.Start.Format(SyncTimeLayout)},
		{"Window End", window.End.Format(SyncTimeLayout)},
		{},
		{"Total Orders", summary.TotalOrders},
		{"Total Revenue", summary.TotalRevenue.String()},
		{"Average Order Value", summary.AverageOrderValue.String()},
		{"Number Of Guests", summary.NumberOfGuests},
	})

	typeRow := 11
	file.SetCellValue(summarySheet, fmt.Sprintf("A%d", typeRow), "Order Type")
	file.SetCellValue(summarySheet, fmt.Sprintf("B%d", typeRow), "Orders")
	file.SetCellValue(summarySheet, fmt.Sprintf("C%d", typeRow), "Revenue")
	for i, info := range summary.OrderTypeInfoList {
		row := typeRow + 1 + i
		file.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), string(info.OrderType))
		file.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), info.NumberOfOrders)
		file.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), info.TotalRevenue.String())
	}

	paymentSheet := "Payments"
	if _, err := file.NewSheet(paymentSheet); err != nil {
		return nil, err
	}
	headers := []string{"Order Id", "Order Time", "Order Type", "Payment Id", "Payment Time", "Payment Method", "Amount Paid", "Guests"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(paymentSheet, cell, header)
	}
	for i, row := range rows {
		values := []any{
			row.OrderId,
			row.OrderDateTime.Format(SyncTimeLayout),
			orderTypeLabel(row.OrderType),
			row.OrderPaymentId,
			row.PaymentDateTime.Format(SyncTimeLayout),
			row.PaymentMethod,
			row.AmountPaid.String(),
			guestLabel(row.GuestNumber),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			file.SetCellValue(paymentSheet, cell, value)
		}
	}
	return file, nil
}

func setCells(file *excelize.File, sheet string, rows [][]any) {
	for i, row := range rows {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			file.SetCellValue(sheet, cell, value)
		}
	}
}

func orderTypeLabel(orderType *models.OrderType) string {
	if orderType == nil {
		return ""
	}
	return string(*orderType)
}

func guestLabel(guests *int) int {
	if guests == nil {
		return 0
	}
	return *guests
}
