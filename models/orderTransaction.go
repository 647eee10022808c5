package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderTransaction is one line item of an order.
type OrderTransaction struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	RestaurantId uuid.UUID `gorm:"type:char(36);index;not null" json:"restaurant_id"`

	OrderTransactionId int `gorm:"not null" json:"order_transaction_id"`
	OrderId            int `gorm:"not null" json:"order_id"`

	MenuItemId        *int            `json:"menu_item_id"`
	MenuItemUnitPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"menu_item_unit_price"`
	Quantity          decimal.Decimal `gorm:"type:decimal(12,3)" json:"quantity"`
	ExtendedPrice     decimal.Decimal `gorm:"type:decimal(12,2)" json:"extended_price"`

	DiscountId         *int            `json:"discount_id"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount_amount"`
	DiscountBasis      string          `gorm:"size:50" json:"discount_basis"`
	DiscountAmountUsed decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount_amount_used"`

	RowGuid *string `gorm:"size:36" json:"row_guid"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func CreateOrderTransaction(ctx context.Context, transaction *OrderTransaction) error {
	db := config.GetDB()
	return db.WithContext(ctx).Create(transaction).Error
}
