package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardRow is one payment joined to its order header, the unit the
// dashboard aggregates over.
type DashboardRow struct {
	OrderId         int             `json:"order_id"`
	OrderDateTime   time.Time       `json:"order_date_time"`
	OrderType       *OrderType      `json:"order_type"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	GuestNumber     *int            `json:"guest_number"`
	OrderPaymentId  int             `json:"order_payment_id"`
	PaymentDateTime time.Time       `json:"payment_date_time"`
	PaymentMethod   string          `json:"payment_method"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
}

// GetDashboardRows returns payment-joined orders inside [start, end], both
// bounds inclusive. Raw SQL bypasses the tenant guard, so restaurant_id is
// filtered explicitly here.
func GetDashboardRows(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time) ([]DashboardRow, error) {
	sql := `
SELECT
    oh.order_id,
    oh.order_date_time,
    oh.order_type,
    oh.discount_amount,
    oh.guest_number,
    op.order_payment_id,
    op.payment_date_time,
    op.payment_method,
    op.amount_paid
FROM order_headers oh
JOIN order_payments op
    ON op.restaurant_id = oh.restaurant_id AND op.order_id = oh.order_id
WHERE oh.restaurant_id = ?
  AND oh.order_date_time >= ?
  AND oh.order_date_time <= ?
ORDER BY oh.order_date_time`

	var rows []DashboardRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, restaurantId, start, end).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyOrderCount is one (day, order type) cell of the daily report. A NULL
// order type scans as nil and is reported as UNKNOWN.
type DailyOrderCount struct {
	OrderDate  string     `json:"order_date"`
	OrderType  *OrderType `json:"order_type"`
	OrderCount int        `json:"order_count"`
}

// GetDailyOrderCounts counts order headers per day per order type inside
// [start, end]. Raw SQL bypasses the tenant guard, so restaurant_id is
// filtered explicitly here.
func GetDailyOrderCounts(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time) ([]DailyOrderCount, error) {
	sql := `
SELECT
    DATE_FORMAT(oh.order_date_time, '%Y-%m-%d') AS order_date,
    oh.order_type,
    COUNT(*) AS order_count
FROM order_headers oh
WHERE oh.restaurant_id = ?
  AND oh.order_date_time >= ?
  AND oh.order_date_time <= ?
GROUP BY order_date, oh.order_type
ORDER BY order_date DESC`

	var counts []DailyOrderCount
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, restaurantId, start, end).Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

type OrderSummary struct {
	ID            uint            `json:"id"`
	OrderId       int             `json:"order_id"`
	OrderDateTime time.Time       `json:"order_date_time"`
	OrderType     *OrderType      `json:"order_type"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	SubTotal      decimal.Decimal `json:"sub_total"`
}

// GetOrderSummaries lists headers in a date range, newest first.
func GetOrderSummaries(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time, limit int, offset int) ([]OrderSummary, error) {
	sql := `
SELECT oh.id, oh.order_id, oh.order_date_time, oh.order_type, oh.amount_due, oh.sub_total
FROM order_headers oh
WHERE oh.restaurant_id = ?
  AND oh.order_date_time >= ?
  AND oh.order_date_time <= ?
ORDER BY oh.order_date_time DESC
LIMIT ? OFFSET ?`

	var orders []OrderSummary
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, restaurantId, start, end, limit, offset).Scan(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
