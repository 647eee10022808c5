package possync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bitbucket.org/mmdatafocus/possync_backend/models"
)

type RestaurantStore interface {
	FindByApiKey(ctx context.Context, apiKey string) (*models.Restaurant, error)
	FindById(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

type RecordStore interface {
	CreateOrderHeader(ctx context.Context, header *models.OrderHeader) error
	CreateOrderPayment(ctx context.Context, payment *models.OrderPayment) error
	CreateOrderTransaction(ctx context.Context, transaction *models.OrderTransaction) error
}

type ReportStore interface {
	DashboardRows(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time) ([]models.DashboardRow, error)
	DailyOrderCounts(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time) ([]models.DailyOrderCount, error)
	OrderSummaries(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time, limit int, offset int) ([]models.OrderSummary, error)
}

type BatchAuditStore interface {
	RecordBatch(ctx context.Context, batch *models.SyncBatch, failures []models.SyncBatchError) error
}

// Store backs every store interface with the mysql models.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) FindByApiKey(ctx context.Context, apiKey string) (*models.Restaurant, error) {
	return models.GetRestaurantByApiKey(ctx, apiKey)
}

func (s *Store) FindById(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	return models.GetRestaurantById(ctx, id)
}

func (s *Store) CreateOrderHeader(ctx context.Context, header *models.OrderHeader) error {
	return models.CreateOrderHeader(ctx, header)
}

func (s *Store) CreateOrderPayment(ctx context.Context, payment *models.OrderPayment) error {
	return models.CreateOrderPayment(ctx, payment)
}

func (s *Store) CreateOrderTransaction(ctx context.Context, transaction *models.OrderTransaction) error {
	return models.CreateOrderTransaction(ctx, transaction)
}

func (s *Store) DashboardRows(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time) ([]models.DashboardRow, error) {
	return models.GetDashboardRows(ctx, restaurantId, start, end)
}

func (s *Store) DailyOrderCounts(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time) ([]models.DailyOrderCount, error) {
	return models.GetDailyOrderCounts(ctx, restaurantId, start, end)
}

func (s *Store) OrderSummaries(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time, limit int, offset int) ([]models.OrderSummary, error) {
	return models.GetOrderSummaries(ctx, restaurantId, start, end, limit, offset)
}

func (s *Store) RecordBatch(ctx context.Context, batch *models.SyncBatch, failures []models.SyncBatchError) error {
	return models.CreateSyncBatch(ctx, batch, failures)
}
