package possync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"bitbucket.org/mmdatafocus/possync_backend/models"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
)

var tracer = otel.Tracer("bitbucket.org/mmdatafocus/possync_backend/possync")

// FailureEntry records one rejected record: its 1-based position in the
// batch, the source-system id when the record carried one, and the reason.
// SourceLabel names the id field for the record kind (headers and payments
// report the OrderId, transactions their own OrderTransactionId).
type FailureEntry struct {
	Index       int
	SourceLabel string
	SourceId    string
	Message     string
}

func (f FailureEntry) String() string {
	return fmt.Sprintf("Failure at recordIndex: %d %s: %s. Error: %s", f.Index, f.SourceLabel, f.SourceId, f.Message)
}

// SyncResult is the outcome of one batch. Succeeded+Failed always equals
// Total; a batch with failures is still a successful call.
type SyncResult struct {
	RecordKind string
	Total      int
	Succeeded  int
	Failed     int
	Failures   []FailureEntry
}

// Transcript renders every failure as one line, in batch order.
func (r *SyncResult) Transcript() string {
	if len(r.Failures) == 0 {
		return ""
	}
	lines := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		lines = append(lines, f.String())
	}
	return strings.Join(lines, "\n")
}

func (r *SyncResult) Response() SyncResponse {
	return SyncResponse{
		TotalRecords:   r.Total,
		SuccessRecords: r.Succeeded,
		FailedRecords:  r.Failed,
		FailureDetails: r.Transcript(),
	}
}

// Ingestor persists POS batches record by record. Each record commits on
// its own, so a malformed record only loses itself.
type Ingestor struct {
	cfg     Config
	records RecordStore
	audits  BatchAuditStore
	logger  *logrus.Logger
}

func NewIngestor(cfg Config, records RecordStore, audits BatchAuditStore) *Ingestor {
	return &Ingestor{
		cfg:     cfg,
		records: records,
		audits:  audits,
		logger:  config.GetLogger(),
	}
}

func (ing *Ingestor) IngestOrderHeaders(ctx context.Context, restaurant *models.Restaurant, data []OrderHeaderData) (*SyncResult, error) {
	return ingestBatch(ctx, ing, restaurant, models.SyncRecordKindOrderHeader, data, ing.persistOrderHeader)
}

func (ing *Ingestor) IngestOrderPayments(ctx context.Context, restaurant *models.Restaurant, data []OrderPaymentData) (*SyncResult, error) {
	return ingestBatch(ctx, ing, restaurant, models.SyncRecordKindOrderPayment, data, ing.persistOrderPayment)
}

func (ing *Ingestor) IngestOrderTransactions(ctx context.Context, restaurant *models.Restaurant, data []OrderTransactionData) (*SyncResult, error) {
	return ingestBatch(ctx, ing, restaurant, models.SyncRecordKindOrderTransaction, data, ing.persistOrderTransaction)
}

type recordHandler[K any] func(ctx context.Context, restaurant *models.Restaurant, data K) (sourceId string, err error)

func ingestBatch[K any](ctx context.Context, ing *Ingestor, restaurant *models.Restaurant, kind string, data []K, persist recordHandler[K]) (*SyncResult, error) {
	ctx, span := tracer.Start(ctx, "possync.ingest", trace.WithAttributes(
		attribute.String("sync.record_kind", kind),
		attribute.String("sync.restaurant_id", restaurant.ID.String()),
		attribute.Int("sync.batch_size", len(data)),
	))
	defer span.End()

	if len(data) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(data) > ing.cfg.MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	started := time.Now()
	label := sourceLabel(kind)
	result := &SyncResult{RecordKind: kind, Total: len(data)}
	for i, record := range data {
		sourceId, err := persistRecord(ctx, restaurant, record, persist)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, FailureEntry{
				Index:       i + 1,
				SourceLabel: label,
				SourceId:    sourceId,
				Message:     err.Error(),
			})
			config.LogError(ing.logger, "possync", "ingestBatch", "record failed", logrus.Fields{
				"restaurantId": restaurant.ID.String(),
				"recordKind":   kind,
				"recordIndex":  i + 1,
				"sourceId":     sourceId,
			}, err)
			continue
		}
		result.Succeeded++
	}

	ing.logger.WithFields(logrus.Fields{
		"module":       "possync",
		"funcName":     "ingestBatch",
		"restaurantId": restaurant.ID.String(),
		"recordKind":   kind,
		"total":        result.Total,
		"succeeded":    result.Succeeded,
		"failed":       result.Failed,
		"durationMs":   time.Since(started).Milliseconds(),
	}).Info("batch processed")

	ing.writeAudit(ctx, restaurant, result, time.Since(started))
	return result, nil
}

func sourceLabel(kind string) string {
	if kind == models.SyncRecordKindOrderTransaction {
		return "OrderTransactionId"
	}
	return "OrderId"
}

// persistRecord isolates one record. A panic while mapping or persisting is
// converted into that record's failure, never the batch's.
func persistRecord[K any](ctx context.Context, restaurant *models.Restaurant, record K, persist recordHandler[K]) (sourceId string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error processing record: %v", r)
		}
	}()
	return persist(ctx, restaurant, record)
}

func (ing *Ingestor) writeAudit(ctx context.Context, restaurant *models.Restaurant, result *SyncResult, elapsed time.Duration) {
	if ing.audits == nil {
		return
	}
	batch := &models.SyncBatch{
		RestaurantId:   restaurant.ID,
		RecordKind:     result.RecordKind,
		TotalRecords:   result.Total,
		SuccessRecords: result.Succeeded,
		FailedRecords:  result.Failed,
		DurationMs:     elapsed.Milliseconds(),
	}
	failures := make([]models.SyncBatchError, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, models.SyncBatchError{
			RecordIndex: f.Index,
			SourceId:    f.SourceId,
			Message:     f.Message,
		})
	}
	if err := ing.audits.RecordBatch(ctx, batch, failures); err != nil {
		config.LogError(ing.logger, "possync", "writeAudit", "audit write failed", logrus.Fields{
			"restaurantId": restaurant.ID.String(),
			"recordKind":   result.RecordKind,
		}, err)
	}
}

func (ing *Ingestor) persistOrderHeader(ctx context.Context, restaurant *models.Restaurant, data OrderHeaderData) (string, error) {
	sourceId := intSourceId(data.OrderId)
	if data.OrderId == nil {
		return sourceId, errors.New("orderId is required for order header")
	}
	orderTime, err := parseSyncTime(data.OrderDateTime)
	if err != nil {
		return sourceId, errors.New("orderDateTime is incorrect for order header")
	}
	header := &models.OrderHeader{
		RestaurantId:              restaurant.ID,
		OrderId:                   *data.OrderId,
		OrderDateTime:             orderTime,
		EmployeeId:                data.EmployeeId,
		StationId:                 data.StationId,
		OrderTypeId:               strings.TrimSpace(data.OrderType),
		DineInTableId:             data.DineInTableId,
		DriverEmployeeId:          data.DriverEmployeeId,
		DiscountId:                data.DiscountId,
		DiscountAmount:            data.DiscountAmount,
		AmountDue:                 data.AmountDue,
		CashDiscountAmount:        data.CashDiscountAmount,
		CashDiscountApprovalEmpId: data.CashDiscountApprovalEmpId,
		SubTotal:                  data.SubTotal,
		GuestNumber:               data.GuestNumber,
		RowGuid:                   utils.NilIfEmpty(strings.TrimSpace(data.RowGuid)),
	}
	header.OrderType = ing.mapOrderType(restaurant, header.OrderTypeId)
	if data.EditTimestamp != "" {
		edited, err := parseSyncTime(data.EditTimestamp)
		if err != nil {
			return sourceId, errors.New("editTimestamp is incorrect for order header")
		}
		header.EditTimestamp = &edited
	}
	if err := ing.records.CreateOrderHeader(ctx, header); err != nil {
		return sourceId, persistError(err)
	}
	return sourceId, nil
}

// mapOrderType is tolerant: an unknown or unparsable type code leaves the
// order type unset so dashboards can still count the order.
func (ing *Ingestor) mapOrderType(restaurant *models.Restaurant, typeId string) *models.OrderType {
	if typeId == "" {
		return nil
	}
	code, err := strconv.Atoi(typeId)
	if err != nil {
		ing.logger.WithFields(logrus.Fields{
			"module":       "possync",
			"funcName":     "mapOrderType",
			"restaurantId": restaurant.ID.String(),
			"orderTypeId":  typeId,
		}).Debug("unparsable order type code")
		return nil
	}
	orderType, ok := models.OrderTypeFromCode(code)
	if !ok {
		ing.logger.WithFields(logrus.Fields{
			"module":       "possync",
			"funcName":     "mapOrderType",
			"restaurantId": restaurant.ID.String(),
			"orderTypeId":  typeId,
		}).Debug("unknown order type code")
		return nil
	}
	return &orderType
}

func (ing *Ingestor) persistOrderPayment(ctx context.Context, restaurant *models.Restaurant, data OrderPaymentData) (string, error) {
	sourceId := intSourceId(data.OrderId)
	if data.OrderPaymentId == nil {
		return sourceId, errors.New("orderPaymentId is required for order payment")
	}
	if data.OrderId == nil {
		return sourceId, errors.New("orderId is required for order payment")
	}
	paidAt, err := parseSyncTime(data.PaymentDateTime)
	if err != nil {
		return sourceId, errors.New("paymentDateTime is incorrect for order payment")
	}
	payment := &models.OrderPayment{
		RestaurantId:         restaurant.ID,
		OrderPaymentId:       *data.OrderPaymentId,
		OrderId:              *data.OrderId,
		PaymentDateTime:      paidAt,
		CashierId:            data.CashierId,
		NonCashierEmployeeId: data.NonCashierEmployeeId,
		PaymentMethod:        strings.TrimSpace(data.PaymentMethod),
		AmountTendered:       data.AmountTendered,
		AmountPaid:           data.AmountPaid,
		EmployeeComp:         data.EmployeeComp,
		RowGuid:              utils.NilIfEmpty(strings.TrimSpace(data.RowGuid)),
	}
	if err := ing.records.CreateOrderPayment(ctx, payment); err != nil {
		return sourceId, persistError(err)
	}
	return sourceId, nil
}

func (ing *Ingestor) persistOrderTransaction(ctx context.Context, restaurant *models.Restaurant, data OrderTransactionData) (string, error) {
	sourceId := intSourceId(data.OrderTransactionId)
	if data.OrderTransactionId == nil {
		return sourceId, errors.New("orderTransactionId is required for order transaction")
	}
	if data.OrderId == nil {
		return sourceId, errors.New("orderId is required for order transaction")
	}
	transaction := &models.OrderTransaction{
		RestaurantId:       restaurant.ID,
		OrderTransactionId: *data.OrderTransactionId,
		OrderId:            *data.OrderId,
		MenuItemId:         data.MenuItemId,
		MenuItemUnitPrice:  data.MenuItemUnitPrice,
		Quantity:           data.Quantity,
		ExtendedPrice:      data.ExtendedPrice,
		DiscountId:         data.DiscountId,
		DiscountAmount:     data.DiscountAmount,
		DiscountBasis:      strings.TrimSpace(data.DiscountBasis),
		DiscountAmountUsed: data.DiscountAmountUsed,
		RowGuid:            utils.NilIfEmpty(strings.TrimSpace(data.RowGuid)),
	}
	if err := ing.records.CreateOrderTransaction(ctx, transaction); err != nil {
		return sourceId, persistError(err)
	}
	return sourceId, nil
}

// persistError keeps raw driver noise out of the failure transcript for the
// one error class terminals can act on.
func persistError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return errors.New("record already exists")
	}
	return err
}

func parseSyncTime(value string) (time.Time, error) {
	return time.ParseInLocation(SyncTimeLayout, strings.TrimSpace(value), time.Local)
}

func intSourceId(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}
