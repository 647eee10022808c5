package models

import (
	"log"

	"bitbucket.org/mmdatafocus/possync_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Restaurant{}, &User{},
		&OrderHeader{}, &OrderPayment{}, &OrderTransaction{},
		&SyncBatch{}, &SyncBatchError{},
	)
	if err != nil {
		log.Fatalf("failed to migrate tables: %v", err)
	}
}
