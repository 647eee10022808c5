package possync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"bitbucket.org/mmdatafocus/possync_backend/models"
)

type fakeRestaurantStore struct {
	byApiKey map[string]*models.Restaurant
	byId     map[uuid.UUID]*models.Restaurant
}

func newFakeRestaurantStore(restaurants ...*models.Restaurant) *fakeRestaurantStore {
	store := &fakeRestaurantStore{
		byApiKey: make(map[string]*models.Restaurant),
		byId:     make(map[uuid.UUID]*models.Restaurant),
	}
	for _, r := range restaurants {
		store.byApiKey[r.ApiKey] = r
		store.byId[r.ID] = r
	}
	return store
}

func (s *fakeRestaurantStore) FindByApiKey(ctx context.Context, apiKey string) (*models.Restaurant, error) {
	if r, ok := s.byApiKey[apiKey]; ok {
		return r, nil
	}
	return nil, errors.New("record not found")
}

func (s *fakeRestaurantStore) FindById(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if r, ok := s.byId[id]; ok {
		return r, nil
	}
	return nil, errors.New("record not found")
}

// fakeRecordStore mimics the unique indexes on payments so duplicate
// submissions fail the way mysql would.
type fakeRecordStore struct {
	headers      []*models.OrderHeader
	payments     []*models.OrderPayment
	transactions []*models.OrderTransaction

	paymentSources map[string]bool
	failHeaders    error
	panicOnOrderId int
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{paymentSources: make(map[string]bool)}
}

func (s *fakeRecordStore) CreateOrderHeader(ctx context.Context, header *models.OrderHeader) error {
	if s.panicOnOrderId != 0 && header.OrderId == s.panicOnOrderId {
		panic("store corrupted")
	}
	if s.failHeaders != nil {
		return s.failHeaders
	}
	s.headers = append(s.headers, header)
	return nil
}

func (s *fakeRecordStore) CreateOrderPayment(ctx context.Context, payment *models.OrderPayment) error {
	key := fmt.Sprintf("%s/%d", payment.RestaurantId, payment.OrderPaymentId)
	if s.paymentSources[key] {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	s.paymentSources[key] = true
	s.payments = append(s.payments, payment)
	return nil
}

func (s *fakeRecordStore) CreateOrderTransaction(ctx context.Context, transaction *models.OrderTransaction) error {
	s.transactions = append(s.transactions, transaction)
	return nil
}

type fakeAuditStore struct {
	batches  []*models.SyncBatch
	failures [][]models.SyncBatchError
}

func (s *fakeAuditStore) RecordBatch(ctx context.Context, batch *models.SyncBatch, failures []models.SyncBatchError) error {
	s.batches = append(s.batches, batch)
	s.failures = append(s.failures, failures)
	return nil
}

type fakeReportStore struct {
	rows      []models.DashboardRow
	daily     []models.DailyOrderCount
	summaries []models.OrderSummary

	gotStart time.Time
	gotEnd   time.Time
}

func (s *fakeReportStore) DashboardRows(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time) ([]models.DashboardRow, error) {
	s.gotStart, s.gotEnd = start, end
	return s.rows, nil
}

func (s *fakeReportStore) DailyOrderCounts(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time) ([]models.DailyOrderCount, error) {
	s.gotStart, s.gotEnd = start, end
	return s.daily, nil
}

func (s *fakeReportStore) OrderSummaries(ctx context.Context, restaurantId uuid.UUID, start time.Time, end time.Time, limit int, offset int) ([]models.OrderSummary, error) {
	s.gotStart, s.gotEnd = start, end
	if offset >= len(s.summaries) {
		return nil, nil
	}
	page := s.summaries[offset:]
	if limit < len(page) {
		page = page[:limit]
	}
	return page, nil
}

func activeRestaurant() *models.Restaurant {
	open, close := "10:00", "23:00"
	return &models.Restaurant{
		ID:          uuid.New(),
		Name:        "Golden Duck",
		Address:     "12 Strand Road",
		ApiKey:      "k7aF2mX9qL4wB8nC1dJ6hR3tY5vZ0sEe",
		Status:      models.RestaurantStatusActive,
		OpeningTime: &open,
		ClosingTime: &close,
	}
}
