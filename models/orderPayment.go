package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderPayment references its order by the terminal's order id, not the
// store's internal header id; the join happens at reporting time.
// (restaurant_id, order_payment_id) is unique, so a resubmitted payment
// fails at persist instead of silently duplicating. Same for row_guid
// when the terminal supplies one.
type OrderPayment struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	RestaurantId uuid.UUID `gorm:"type:char(36);index;uniqueIndex:idx_payments_source,priority:1;uniqueIndex:idx_payments_row_guid,priority:1;not null" json:"restaurant_id"`

	OrderPaymentId  int       `gorm:"uniqueIndex:idx_payments_source,priority:2;not null" json:"order_payment_id"`
	OrderId         int       `gorm:"not null" json:"order_id"`
	PaymentDateTime time.Time `gorm:"index;not null" json:"payment_date_time"`

	CashierId            *int   `json:"cashier_id"`
	NonCashierEmployeeId *int   `json:"non_cashier_employee_id"`
	PaymentMethod        string `gorm:"size:50" json:"payment_method"`

	AmountTendered decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_tendered"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_paid"`
	EmployeeComp   decimal.Decimal `gorm:"type:decimal(12,2)" json:"employee_comp"`

	RowGuid *string `gorm:"size:36;uniqueIndex:idx_payments_row_guid,priority:2" json:"row_guid"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func CreateOrderPayment(ctx context.Context, payment *OrderPayment) error {
	db := config.GetDB()
	return db.WithContext(ctx).Create(payment).Error
}
