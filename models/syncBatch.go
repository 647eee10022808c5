package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"github.com/google/uuid"
)

const (
	SyncRecordKindOrderHeader      = "order_header"
	SyncRecordKindOrderPayment     = "order_payment"
	SyncRecordKindOrderTransaction = "order_transaction"
)

// SyncBatch is an audit row for one ingest call: what kind of records,
// how many made it, how long it took.
type SyncBatch struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	RestaurantId uuid.UUID `gorm:"type:char(36);index;not null" json:"restaurant_id"`
	RecordKind   string    `gorm:"size:30;index;not null" json:"record_kind"`

	TotalRecords   int   `json:"total_records"`
	SuccessRecords int   `json:"success_records"`
	FailedRecords  int   `json:"failed_records"`
	DurationMs     int64 `json:"duration_ms"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SyncBatchError keeps one failed record's position, source id and message.
type SyncBatchError struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	SyncBatchId  uint      `gorm:"index;not null" json:"sync_batch_id"`
	RestaurantId uuid.UUID `gorm:"type:char(36);index;not null" json:"restaurant_id"`

	RecordIndex int    `json:"record_index"`
	SourceId    string `gorm:"size:64" json:"source_id"`
	Message     string `gorm:"type:text" json:"message"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CreateSyncBatch writes the audit trail for a finished batch. Failures here
// must not fail the sync call itself; callers log and move on.
func CreateSyncBatch(ctx context.Context, batch *SyncBatch, errs []SyncBatchError) error {
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(batch).Error; err != nil {
		return err
	}
	if len(errs) == 0 {
		return nil
	}
	for i := range errs {
		errs[i].SyncBatchId = batch.ID
		errs[i].RestaurantId = batch.RestaurantId
	}
	return db.WithContext(ctx).Create(&errs).Error
}
