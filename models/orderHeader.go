package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHeader is one order pushed from a POS terminal. OrderId is the
// terminal's own identifier, unique only within the tenant, never globally.
type OrderHeader struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	RestaurantId uuid.UUID `gorm:"type:char(36);index;not null" json:"restaurant_id"`

	OrderId       int       `gorm:"not null" json:"order_id"`
	OrderDateTime time.Time `gorm:"index;not null" json:"order_date_time"`

	EmployeeId       *int       `json:"employee_id"`
	StationId        *int       `json:"station_id"`
	OrderTypeId      string     `gorm:"size:10" json:"order_type_id"`
	OrderType        *OrderType `gorm:"size:20" json:"order_type"`
	DineInTableId    *int       `json:"dine_in_table_id"`
	DriverEmployeeId *int       `json:"driver_employee_id"`

	DiscountId                *int            `json:"discount_id"`
	DiscountAmount            decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount_amount"`
	AmountDue                 decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_due"`
	CashDiscountAmount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"cash_discount_amount"`
	CashDiscountApprovalEmpId *int            `json:"cash_discount_approval_emp_id"`
	SubTotal                  decimal.Decimal `gorm:"type:decimal(12,2)" json:"sub_total"`
	GuestNumber               *int            `json:"guest_number"`

	EditTimestamp *time.Time `json:"edit_timestamp"`
	RowGuid       *string    `gorm:"size:36" json:"row_guid"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreateOrderHeader persists one header in its own transaction. Batch
// ingestion commits records independently so one bad record never rolls
// back its siblings.
func CreateOrderHeader(ctx context.Context, header *OrderHeader) error {
	db := config.GetDB()
	return db.WithContext(ctx).Create(header).Error
}
