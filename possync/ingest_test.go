package possync

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/mmdatafocus/possync_backend/models"
)

func testIngestor(records RecordStore, audits BatchAuditStore) *Ingestor {
	return NewIngestor(Config{MaxBatchSize: 500}, records, audits)
}

func headerData(orderId int) OrderHeaderData {
	id := orderId
	return OrderHeaderData{
		OrderId:       &id,
		OrderDateTime: "2024-03-14 12:30:00",
		OrderType:     "1",
		AmountDue:     decimal.NewFromInt(25000),
		SubTotal:      decimal.NewFromInt(25000),
	}
}

func paymentData(paymentId int, orderId int) OrderPaymentData {
	pid, oid := paymentId, orderId
	return OrderPaymentData{
		OrderPaymentId:  &pid,
		OrderId:         &oid,
		PaymentDateTime: "2024-03-14 12:45:00",
		PaymentMethod:   "CASH",
		AmountPaid:      decimal.NewFromInt(25000),
	}
}

func TestIngestOrderHeaders_AllSucceed(t *testing.T) {
	records := newFakeRecordStore()
	audits := &fakeAuditStore{}
	ing := testIngestor(records, audits)

	data := []OrderHeaderData{headerData(101), headerData(102), headerData(103)}
	result, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), data)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Transcript())
	assert.Len(t, records.headers, 3)

	require.Len(t, audits.batches, 1)
	assert.Equal(t, models.SyncRecordKindOrderHeader, audits.batches[0].RecordKind)
	assert.Equal(t, 3, audits.batches[0].SuccessRecords)
}

func TestIngestOrderHeaders_EmptyBatch(t *testing.T) {
	ing := testIngestor(newFakeRecordStore(), nil)

	_, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), nil)
	assert.Equal(t, ErrEmptyBatch, err)
}

func TestIngestOrderHeaders_BatchSizeLimit(t *testing.T) {
	records := newFakeRecordStore()
	ing := testIngestor(records, nil)

	atLimit := make([]OrderHeaderData, 500)
	for i := range atLimit {
		atLimit[i] = headerData(i + 1)
	}
	result, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), atLimit)
	require.NoError(t, err)
	assert.Equal(t, 500, result.Succeeded)

	overLimit := append(atLimit, headerData(501))
	_, err = ing.IngestOrderHeaders(context.Background(), activeRestaurant(), overLimit)
	assert.Equal(t, ErrBatchTooLarge, err)
}

func TestIngestOrderHeaders_MissingOrderIdFailsThatRecordOnly(t *testing.T) {
	records := newFakeRecordStore()
	ing := testIngestor(records, nil)

	bad := headerData(0)
	bad.OrderId = nil
	data := []OrderHeaderData{headerData(101), bad, headerData(103)}

	result, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), data)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, result.Total, result.Succeeded+result.Failed)
	assert.Len(t, records.headers, 2)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, 2, result.Failures[0].Index)
	assert.Equal(t, "Failure at recordIndex: 2 OrderId: . Error: orderId is required for order header", result.Failures[0].String())
}

func TestIngestOrderHeaders_BadTimestampNotPersisted(t *testing.T) {
	records := newFakeRecordStore()
	ing := testIngestor(records, nil)

	bad := headerData(102)
	bad.OrderDateTime = "14/03/2024 12:30"
	data := []OrderHeaderData{headerData(101), bad}

	result, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), data)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Len(t, records.headers, 1)
	assert.Equal(t, 101, records.headers[0].OrderId)
	assert.Contains(t, result.Transcript(), "OrderId: 102")
	assert.Contains(t, result.Transcript(), "orderDateTime is incorrect")
}

func TestIngestOrderHeaders_BadEditTimestampFails(t *testing.T) {
	records := newFakeRecordStore()
	ing := testIngestor(records, nil)

	bad := headerData(101)
	bad.EditTimestamp = "not a time"

	result, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), []OrderHeaderData{bad})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, records.headers)
}

func TestIngestOrderHeaders_UnknownOrderTypeTolerated(t *testing.T) {
	records := newFakeRecordStore()
	ing := testIngestor(records, nil)

	unknownCode := headerData(101)
	unknownCode.OrderType = "9"
	unparsable := headerData(102)
	unparsable.OrderType = "takeout"

	result, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), []OrderHeaderData{unknownCode, unparsable})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)

	require.Len(t, records.headers, 2)
	assert.Nil(t, records.headers[0].OrderType)
	assert.Nil(t, records.headers[1].OrderType)
	assert.Equal(t, "9", records.headers[0].OrderTypeId)
}

func TestIngestOrderHeaders_KnownOrderTypeMapped(t *testing.T) {
	records := newFakeRecordStore()
	ing := testIngestor(records, nil)

	data := headerData(101)
	data.OrderType = "2"

	_, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), []OrderHeaderData{data})
	require.NoError(t, err)

	require.Len(t, records.headers, 1)
	require.NotNil(t, records.headers[0].OrderType)
	assert.Equal(t, models.OrderTypeTakeaway, *records.headers[0].OrderType)
}

func TestIngestOrderHeaders_PanicFailsOnlyThatRecord(t *testing.T) {
	records := newFakeRecordStore()
	records.panicOnOrderId = 102
	ing := testIngestor(records, nil)

	data := []OrderHeaderData{headerData(101), headerData(102), headerData(103)}
	result, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), data)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 2, result.Failures[0].Index)
	assert.Contains(t, result.Failures[0].Message, "internal error")
}

func TestIngestOrderPayments_DuplicateRejectedOnResubmit(t *testing.T) {
	records := newFakeRecordStore()
	audits := &fakeAuditStore{}
	ing := testIngestor(records, audits)
	restaurant := activeRestaurant()

	first, err := ing.IngestOrderPayments(context.Background(), restaurant, []OrderPaymentData{paymentData(9001, 101)})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Succeeded)

	second, err := ing.IngestOrderPayments(context.Background(), restaurant, []OrderPaymentData{
		paymentData(9001, 101),
		paymentData(9002, 101),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Succeeded)
	assert.Equal(t, 1, second.Failed)
	assert.Contains(t, second.Transcript(), "record already exists")
	assert.Len(t, records.payments, 2)
}

func TestIngestOrderPayments_RequiredFields(t *testing.T) {
	ing := testIngestor(newFakeRecordStore(), nil)

	noPaymentId := paymentData(0, 101)
	noPaymentId.OrderPaymentId = nil
	noOrderId := paymentData(9001, 0)
	noOrderId.OrderId = nil

	result, err := ing.IngestOrderPayments(context.Background(), activeRestaurant(), []OrderPaymentData{noPaymentId, noOrderId})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Failed)
	assert.Contains(t, result.Transcript(), "orderPaymentId is required")
	assert.Contains(t, result.Transcript(), "orderId is required")
}

func TestIngestOrderTransactions_Succeeds(t *testing.T) {
	records := newFakeRecordStore()
	ing := testIngestor(records, nil)

	tid, oid, item := 5001, 101, 42
	data := []OrderTransactionData{{
		OrderTransactionId: &tid,
		OrderId:            &oid,
		MenuItemId:         &item,
		MenuItemUnitPrice:  decimal.NewFromInt(5000),
		Quantity:           decimal.NewFromFloat(2.5),
		ExtendedPrice:      decimal.NewFromInt(12500),
	}}
	result, err := ing.IngestOrderTransactions(context.Background(), activeRestaurant(), data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, records.transactions, 1)
	assert.Equal(t, "2.5", records.transactions[0].Quantity.String())
}

func TestIngestOrderTransactions_FailureReportsTransactionId(t *testing.T) {
	records := newFakeRecordStore()
	ing := testIngestor(records, nil)

	tid := 5001
	data := []OrderTransactionData{{OrderTransactionId: &tid}}
	result, err := ing.IngestOrderTransactions(context.Background(), activeRestaurant(), data)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Failure at recordIndex: 1 OrderTransactionId: 5001. Error: orderId is required for order transaction", result.Failures[0].String())
}

func TestSyncResult_Transcript(t *testing.T) {
	result := &SyncResult{
		Failures: []FailureEntry{
			{Index: 2, SourceLabel: "OrderId", SourceId: "102", Message: "orderDateTime is incorrect for order header"},
			{Index: 7, SourceLabel: "OrderId", SourceId: "", Message: "orderId is required for order header"},
		},
	}
	expected := "Failure at recordIndex: 2 OrderId: 102. Error: orderDateTime is incorrect for order header\n" +
		"Failure at recordIndex: 7 OrderId: . Error: orderId is required for order header"
	assert.Equal(t, expected, result.Transcript())
}

func TestPersistError_DuplicateKeyRewritten(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '101' for key 'idx_payments_source'"}
	assert.EqualError(t, persistError(dup), "record already exists")

	other := errors.New("connection reset by peer")
	assert.Same(t, other, persistError(other))
}

func TestIngest_AuditCarriesFailures(t *testing.T) {
	records := newFakeRecordStore()
	audits := &fakeAuditStore{}
	ing := testIngestor(records, audits)

	bad := headerData(0)
	bad.OrderId = nil
	_, err := ing.IngestOrderHeaders(context.Background(), activeRestaurant(), []OrderHeaderData{headerData(101), bad})
	require.NoError(t, err)

	require.Len(t, audits.batches, 1)
	assert.Equal(t, 1, audits.batches[0].FailedRecords)
	require.Len(t, audits.failures[0], 1)
	assert.Equal(t, 2, audits.failures[0][0].RecordIndex)
}

func TestResponse_MirrorsResult(t *testing.T) {
	result := &SyncResult{
		Total:     5,
		Succeeded: 4,
		Failed:    1,
		Failures:  []FailureEntry{{Index: 3, SourceLabel: "OrderId", SourceId: "103", Message: "boom"}},
	}
	resp := result.Response()
	assert.Equal(t, 5, resp.TotalRecords)
	assert.Equal(t, 4, resp.SuccessRecords)
	assert.Equal(t, 1, resp.FailedRecords)
	assert.Equal(t, "Failure at recordIndex: 3 OrderId: 103. Error: boom", resp.FailureDetails)
}
