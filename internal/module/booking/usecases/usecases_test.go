package usecases_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"
	"time"

	"appointment-service/config"
	"appointment-service/internal/module/booking/mocks"
	"appointment-service/internal/module/booking/models/entity"
	"appointment-service/internal/module/booking/models/request"
	"appointment-service/internal/module/booking/usecases"
	"appointment-service/internal/pkg/errors"
	"appointment-service/internal/pkg/vnpay"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const testSecretKey = "test-secret-key"

var (
	repoMock  *mocks.Repositories
	publisher *publisherStub
	uc        usecases.Usecase
)

type publisherStub struct {
	topics []string
}

func (p *publisherStub) Publish(topic string, messages ...*message.Message) error {
	p.topics = append(p.topics, topic)
	return nil
}

func (p *publisherStub) Close() error { return nil }

func setup() {
	repoMock = new(mocks.Repositories)
	publisher = &publisherStub{}

	vnpayCfg := &config.VNPayConfig{
		Version:    "2.1.0",
		TmnCode:    "TESTCODE",
		SecretKey:  testSecretKey,
		PaymentURL: "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://example.com/payment/return",
	}
	bookingCfg := &config.BookingConfig{
		CancellationLeadHours: 2,
		PaymentExpiryMinutes:  30,
	}

	logger := otelzap.New(zap.NewNop())
	uc = usecases.New(repoMock, logger, publisher, vnpay.NewClient(vnpayCfg), bookingCfg)
}

// signedCallbackParams signs a callback parameter set the way the gateway
// does, so verification passes against the test secret.
func signedCallbackParams(params map[string]string) map[string]string {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	mac := hmac.New(sha512.New, []byte(testSecretKey))
	mac.Write([]byte(values.Encode()))

	signed := make(map[string]string, len(params)+1)
	for key, value := range params {
		signed[key] = value
	}
	signed["vnp_SecureHash"] = hex.EncodeToString(mac.Sum(nil))
	return signed
}

func testService() entity.Service {
	return entity.Service{
		ID:                 1,
		Name:               "Haircut",
		DurationMinutes:    60,
		Price:              500000,
		IsActive:           true,
		AdvanceBookingDays: 30,
		MinAdvanceHours:    2,
		MaxBookingsPerDay:  10,
	}
}

func testSchedule(staffID int64, weekday int) entity.StaffSchedule {
	return entity.StaffSchedule{
		ID:          1,
		StaffID:     staffID,
		Weekday:     weekday,
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsAvailable: true,
	}
}

// bookingStart returns noon two days out, comfortably inside the default
// working hours and booking window.
func bookingStart() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.Local).AddDate(0, 0, 2)
}

func TestCreateBooking(t *testing.T) {
	setup()

	service := testService()
	start := bookingStart()

	repoMock.On("FindServiceByID", mock.Anything, int64(1)).Return(service, nil)
	repoMock.On("CountBookingsForServiceOnDay", mock.Anything, int64(1), mock.Anything).Return(0, nil)
	repoMock.On("FindEligibleStaff", mock.Anything, int64(1)).Return([]entity.Staff{{ID: 7, FullName: "Alice", IsActive: true}}, nil)
	repoMock.On("FindStaffSchedule", mock.Anything, int64(7), int(start.Weekday())).Return(testSchedule(7, int(start.Weekday())), nil)
	repoMock.On("FindActiveBookingsByStaff", mock.Anything, int64(7), mock.Anything, mock.Anything).Return([]entity.Booking{}, nil)
	repoMock.On("LockStaffDay", mock.Anything, int64(7), start.Format("2006-01-02")).Return(func() (bool, error) { return true, nil }, nil)
	repoMock.On("ReserveSlot", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		booking := args.Get(1).(*entity.Booking)
		booking.ID = 11
	}).Return(nil)
	repoMock.On("InvalidateAvailabilityCache", mock.Anything, int64(7), start.Format("2006-01-02")).Return(nil)
	repoMock.On("InsertPaymentTransaction", mock.Anything, mock.Anything).Return(nil)
	repoMock.On("SetTaskScheduler", mock.Anything, mock.Anything, mock.Anything).Return("task-1", nil)
	repoMock.On("UpdatePaymentTransaction", mock.Anything, mock.Anything).Return(nil)

	payload := &request.CreateBooking{
		ServiceID:     1,
		StartDatetime: start.Format(time.RFC3339),
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "0900000001",
		PaymentMethod: entity.PaymentMethodVNPay,
		ReturnURL:     "https://example.com/return",
	}

	resp, err := uc.CreateBooking(context.Background(), payload, 42)

	assert.NoError(t, err)
	assert.Equal(t, entity.BookingPending, resp.Booking.Status)
	assert.Equal(t, entity.PaymentStatusPending, resp.Booking.PaymentStatus)
	assert.Equal(t, int64(7), resp.Booking.StaffID)
	assert.True(t, resp.Payment.Success)
	assert.True(t, strings.HasPrefix(resp.Payment.TransactionID, "TXN"))
	assert.Contains(t, resp.Payment.PaymentURL, "vnp_SecureHash=")
	assert.Contains(t, publisher.topics, usecases.TopicBookingCreated)
}

func TestCreateBookingCash(t *testing.T) {
	setup()

	service := testService()
	start := bookingStart()

	repoMock.On("FindServiceByID", mock.Anything, int64(1)).Return(service, nil)
	repoMock.On("CountBookingsForServiceOnDay", mock.Anything, int64(1), mock.Anything).Return(0, nil)
	repoMock.On("FindEligibleStaff", mock.Anything, int64(1)).Return([]entity.Staff{{ID: 7, FullName: "Alice", IsActive: true}}, nil)
	repoMock.On("FindStaffSchedule", mock.Anything, int64(7), int(start.Weekday())).Return(testSchedule(7, int(start.Weekday())), nil)
	repoMock.On("FindActiveBookingsByStaff", mock.Anything, int64(7), mock.Anything, mock.Anything).Return([]entity.Booking{}, nil)
	repoMock.On("LockStaffDay", mock.Anything, int64(7), start.Format("2006-01-02")).Return(func() (bool, error) { return true, nil }, nil)
	repoMock.On("ReserveSlot", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repoMock.On("InvalidateAvailabilityCache", mock.Anything, int64(7), start.Format("2006-01-02")).Return(nil)
	repoMock.On("InsertPaymentTransaction", mock.Anything, mock.Anything).Return(nil)

	payload := &request.CreateBooking{
		ServiceID:     1,
		StartDatetime: start.Format(time.RFC3339),
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "0900000001",
		PaymentMethod: entity.PaymentMethodCash,
	}

	resp, err := uc.CreateBooking(context.Background(), payload, 42)

	assert.NoError(t, err)
	assert.True(t, resp.Payment.Success)
	assert.True(t, strings.HasPrefix(resp.Payment.TransactionID, "CASH"))
	assert.Empty(t, resp.Payment.PaymentURL)
	repoMock.AssertNotCalled(t, "SetTaskScheduler", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBookingServiceNotFound(t *testing.T) {
	setup()

	repoMock.On("FindServiceByID", mock.Anything, int64(1)).Return(entity.Service{}, errors.NotFound("service not found"))

	payload := &request.CreateBooking{
		ServiceID:     1,
		StartDatetime: bookingStart().Format(time.RFC3339),
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "0900000001",
		PaymentMethod: entity.PaymentMethodVNPay,
	}

	_, err := uc.CreateBooking(context.Background(), payload, 42)

	assert.EqualError(t, err, "service not found")
}

func TestCreateBookingFullyBooked(t *testing.T) {
	setup()

	repoMock.On("FindServiceByID", mock.Anything, int64(1)).Return(testService(), nil)
	repoMock.On("CountBookingsForServiceOnDay", mock.Anything, int64(1), mock.Anything).Return(10, nil)

	payload := &request.CreateBooking{
		ServiceID:     1,
		StartDatetime: bookingStart().Format(time.RFC3339),
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "0900000001",
		PaymentMethod: entity.PaymentMethodVNPay,
	}

	_, err := uc.CreateBooking(context.Background(), payload, 42)

	assert.EqualError(t, err, "service is fully booked for this day")
	assert.Equal(t, 409, errors.HttpCode(err))
}

func TestCreateBookingNoStaffAvailable(t *testing.T) {
	setup()

	repoMock.On("FindServiceByID", mock.Anything, int64(1)).Return(testService(), nil)
	repoMock.On("CountBookingsForServiceOnDay", mock.Anything, int64(1), mock.Anything).Return(0, nil)
	repoMock.On("FindEligibleStaff", mock.Anything, int64(1)).Return([]entity.Staff{}, nil)

	payload := &request.CreateBooking{
		ServiceID:     1,
		StartDatetime: bookingStart().Format(time.RFC3339),
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "0900000001",
		PaymentMethod: entity.PaymentMethodVNPay,
	}

	_, err := uc.CreateBooking(context.Background(), payload, 42)

	assert.EqualError(t, err, "no staff available for this service")
}

func TestCreateBookingRequestedStaffConflict(t *testing.T) {
	setup()

	start := bookingStart()
	existing := entity.Booking{
		StaffID:       7,
		StartDatetime: start.Add(-30 * time.Minute),
		EndDatetime:   start.Add(30 * time.Minute),
		Status:        entity.BookingConfirmed,
	}

	repoMock.On("FindServiceByID", mock.Anything, int64(1)).Return(testService(), nil)
	repoMock.On("CountBookingsForServiceOnDay", mock.Anything, int64(1), mock.Anything).Return(0, nil)
	repoMock.On("FindEligibleStaff", mock.Anything, int64(1)).Return([]entity.Staff{{ID: 7, FullName: "Alice", IsActive: true}}, nil)
	repoMock.On("FindStaffSchedule", mock.Anything, int64(7), int(start.Weekday())).Return(testSchedule(7, int(start.Weekday())), nil)
	repoMock.On("FindActiveBookingsByStaff", mock.Anything, int64(7), mock.Anything, mock.Anything).Return([]entity.Booking{existing}, nil)

	payload := &request.CreateBooking{
		ServiceID:     1,
		StaffID:       7,
		StartDatetime: start.Format(time.RFC3339),
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "0900000001",
		PaymentMethod: entity.PaymentMethodVNPay,
	}

	_, err := uc.CreateBooking(context.Background(), payload, 42)

	assert.EqualError(t, err, "time slot not available")
	assert.Equal(t, 409, errors.HttpCode(err))
	repoMock.AssertNotCalled(t, "ReserveSlot", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBookingStaffNotEligible(t *testing.T) {
	setup()

	repoMock.On("FindServiceByID", mock.Anything, int64(1)).Return(testService(), nil)
	repoMock.On("CountBookingsForServiceOnDay", mock.Anything, int64(1), mock.Anything).Return(0, nil)
	repoMock.On("FindEligibleStaff", mock.Anything, int64(1)).Return([]entity.Staff{{ID: 7, FullName: "Alice", IsActive: true}}, nil)

	payload := &request.CreateBooking{
		ServiceID:     1,
		StaffID:       99,
		StartDatetime: bookingStart().Format(time.RFC3339),
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "0900000001",
		PaymentMethod: entity.PaymentMethodVNPay,
	}

	_, err := uc.CreateBooking(context.Background(), payload, 42)

	assert.EqualError(t, err, "staff is not eligible for this service")
}

func TestProcessPaymentCallbackSuccess(t *testing.T) {
	setup()

	bookingUUID := uuid.New()
	transaction := entity.PaymentTransaction{
		ID:            5,
		TransactionID: "TXNABCDEF12",
		BookingID:     11,
		Amount:        500000,
		Status:        entity.TransactionPending,
		TaskID:        "task-1",
	}
	booking := entity.Booking{
		ID:            11,
		BookingID:     bookingUUID,
		CustomerID:    42,
		Status:        entity.BookingPending,
		PaymentStatus: entity.PaymentStatusPending,
		StartDatetime: bookingStart(),
	}

	params := signedCallbackParams(map[string]string{
		"vnp_TxnRef":            "ref_20240601100000",
		"vnp_Amount":            "50000000",
		"vnp_ResponseCode":      "00",
		"vnp_TransactionStatus": "00",
		"vnp_TransactionNo":     "9912345",
		"vnp_OrderInfo":         "Payment for Haircut - John Doe",
	})

	repoMock.On("FindPaymentTransactionByGatewayRef", mock.Anything, "ref_20240601100000").Return(transaction, nil)
	repoMock.On("FindBookingByID", mock.Anything, int64(11)).Return(booking, nil)
	repoMock.On("ResolvePaymentCallback", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		resolvedTransaction := args.Get(1).(*entity.PaymentTransaction)
		resolvedBooking := args.Get(2).(*entity.Booking)
		history := args.Get(3).(*entity.BookingHistory)

		assert.Equal(t, entity.TransactionSuccess, resolvedTransaction.Status)
		assert.Equal(t, "9912345", resolvedTransaction.GatewayTransactionID)
		assert.Equal(t, entity.BookingConfirmed, resolvedBooking.Status)
		assert.Equal(t, entity.PaymentStatusPaid, resolvedBooking.PaymentStatus)
		assert.Equal(t, entity.BookingPending, history.PreviousStatus)
		assert.Equal(t, entity.BookingConfirmed, history.NewStatus)
		assert.Equal(t, "Payment successful via VNPAY", history.Notes)
	}).Return(nil)
	repoMock.On("DeleteTaskScheduler", mock.Anything, "task-1").Return(nil)

	resp, err := uc.ProcessPaymentCallback(context.Background(), params)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Payment successful", resp.Message)
	assert.Equal(t, bookingUUID.String(), resp.BookingID)
	assert.Equal(t, float64(500000), resp.Amount)
	assert.Contains(t, publisher.topics, usecases.TopicBookingConfirmed)
}

func TestProcessPaymentCallbackFailure(t *testing.T) {
	setup()

	transaction := entity.PaymentTransaction{
		ID:            5,
		TransactionID: "TXNABCDEF12",
		BookingID:     11,
		Amount:        500000,
		Status:        entity.TransactionPending,
		TaskID:        "task-1",
	}
	booking := entity.Booking{
		ID:            11,
		BookingID:     uuid.New(),
		CustomerID:    42,
		Status:        entity.BookingPending,
		PaymentStatus: entity.PaymentStatusPending,
	}

	params := signedCallbackParams(map[string]string{
		"vnp_TxnRef":            "ref_20240601100000",
		"vnp_Amount":            "50000000",
		"vnp_ResponseCode":      "24",
		"vnp_TransactionStatus": "02",
	})

	repoMock.On("FindPaymentTransactionByGatewayRef", mock.Anything, "ref_20240601100000").Return(transaction, nil)
	repoMock.On("FindBookingByID", mock.Anything, int64(11)).Return(booking, nil)
	repoMock.On("ResolvePaymentCallback", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		resolvedTransaction := args.Get(1).(*entity.PaymentTransaction)
		resolvedBooking := args.Get(2).(*entity.Booking)
		history := args.Get(3).(*entity.BookingHistory)

		assert.Equal(t, entity.TransactionFailed, resolvedTransaction.Status)
		assert.Equal(t, entity.BookingPending, resolvedBooking.Status)
		assert.Equal(t, entity.PaymentStatusFailed, resolvedBooking.PaymentStatus)
		assert.Equal(t, history.PreviousStatus, history.NewStatus)
		assert.Equal(t, "Payment failed via VNPAY. Code: 24", history.Notes)
	}).Return(nil)
	repoMock.On("DeleteTaskScheduler", mock.Anything, "task-1").Return(nil)

	resp, err := uc.ProcessPaymentCallback(context.Background(), params)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Payment failed", resp.Message)
	assert.Contains(t, publisher.topics, usecases.TopicPaymentFailed)
}

func TestProcessPaymentCallbackInvalidSignature(t *testing.T) {
	setup()

	params := signedCallbackParams(map[string]string{
		"vnp_TxnRef":            "ref_20240601100000",
		"vnp_Amount":            "50000000",
		"vnp_TransactionStatus": "00",
	})
	params["vnp_Amount"] = "99999999"

	resp, err := uc.ProcessPaymentCallback(context.Background(), params)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid signature", resp.Message)
	repoMock.AssertNotCalled(t, "FindPaymentTransactionByGatewayRef", mock.Anything, mock.Anything)
}

func TestProcessPaymentCallbackTransactionNotFound(t *testing.T) {
	setup()

	params := signedCallbackParams(map[string]string{
		"vnp_TxnRef":            "unknown_20240601100000",
		"vnp_Amount":            "50000000",
		"vnp_TransactionStatus": "00",
	})

	repoMock.On("FindPaymentTransactionByGatewayRef", mock.Anything, "unknown_20240601100000").Return(entity.PaymentTransaction{}, errors.NotFound("payment transaction not found"))

	resp, err := uc.ProcessPaymentCallback(context.Background(), params)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Payment transaction not found", resp.Message)
}

// A redelivered callback for a resolved transaction must be a no-op.
func TestProcessPaymentCallbackAlreadyProcessed(t *testing.T) {
	setup()

	transaction := entity.PaymentTransaction{
		ID:        5,
		BookingID: 11,
		Amount:    500000,
		Status:    entity.TransactionSuccess,
	}
	booking := entity.Booking{
		ID:        11,
		BookingID: uuid.New(),
		Status:    entity.BookingConfirmed,
	}

	params := signedCallbackParams(map[string]string{
		"vnp_TxnRef":            "ref_20240601100000",
		"vnp_Amount":            "50000000",
		"vnp_TransactionStatus": "00",
	})

	repoMock.On("FindPaymentTransactionByGatewayRef", mock.Anything, "ref_20240601100000").Return(transaction, nil)
	repoMock.On("FindBookingByID", mock.Anything, int64(11)).Return(booking, nil)

	resp, err := uc.ProcessPaymentCallback(context.Background(), params)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Transaction already processed", resp.Message)
	repoMock.AssertNotCalled(t, "ResolvePaymentCallback", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A concurrent delivery resolved the transaction between the usecase guard
// and the row lock; the conflict maps to the same no-op result.
func TestProcessPaymentCallbackResolutionRace(t *testing.T) {
	setup()

	transaction := entity.PaymentTransaction{
		ID:        5,
		BookingID: 11,
		Amount:    500000,
		Status:    entity.TransactionPending,
	}
	booking := entity.Booking{
		ID:        11,
		BookingID: uuid.New(),
		Status:    entity.BookingPending,
	}

	params := signedCallbackParams(map[string]string{
		"vnp_TxnRef":            "ref_20240601100000",
		"vnp_Amount":            "50000000",
		"vnp_TransactionStatus": "00",
	})

	repoMock.On("FindPaymentTransactionByGatewayRef", mock.Anything, "ref_20240601100000").Return(transaction, nil)
	repoMock.On("FindBookingByID", mock.Anything, int64(11)).Return(booking, nil)
	repoMock.On("ResolvePaymentCallback", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.Conflict("payment transaction already resolved"))

	resp, err := uc.ProcessPaymentCallback(context.Background(), params)

	assert.NoError(t, err)
	assert.Equal(t, "Transaction already processed", resp.Message)
	repoMock.AssertNotCalled(t, "DeleteTaskScheduler", mock.Anything, mock.Anything)
}

func TestCancelBooking(t *testing.T) {
	setup()

	booking := entity.Booking{
		ID:            11,
		BookingID:     uuid.New(),
		CustomerID:    42,
		StaffID:       7,
		Status:        entity.BookingConfirmed,
		StartDatetime: time.Now().Add(48 * time.Hour),
	}

	repoMock.On("FindBookingByBookingID", mock.Anything, booking.BookingID.String()).Return(booking, nil)
	repoMock.On("CancelBooking", mock.Anything, mock.Anything, mock.Anything, "Booking cancelled by customer. Reason: schedule change").Return(nil)
	repoMock.On("InvalidateAvailabilityCache", mock.Anything, int64(7), mock.Anything).Return(nil)

	payload := &request.CancelBooking{
		BookingID: booking.BookingID.String(),
		Reason:    "schedule change",
	}

	resp, err := uc.CancelBooking(context.Background(), payload, 42)

	assert.NoError(t, err)
	assert.Equal(t, entity.BookingCancelled, resp.Status)
	assert.Contains(t, publisher.topics, usecases.TopicBookingCancelled)
}

func TestCancelBookingInsideLeadWindow(t *testing.T) {
	setup()

	booking := entity.Booking{
		ID:            11,
		BookingID:     uuid.New(),
		CustomerID:    42,
		Status:        entity.BookingConfirmed,
		StartDatetime: time.Now().Add(1 * time.Hour),
	}

	repoMock.On("FindBookingByBookingID", mock.Anything, booking.BookingID.String()).Return(booking, nil)

	payload := &request.CancelBooking{BookingID: booking.BookingID.String()}

	_, err := uc.CancelBooking(context.Background(), payload, 42)

	assert.EqualError(t, err, "booking cannot be cancelled")
	assert.Equal(t, 422, errors.HttpCode(err))
	repoMock.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBookingNotOwner(t *testing.T) {
	setup()

	booking := entity.Booking{
		ID:            11,
		BookingID:     uuid.New(),
		CustomerID:    7,
		Status:        entity.BookingConfirmed,
		StartDatetime: time.Now().Add(48 * time.Hour),
	}

	repoMock.On("FindBookingByBookingID", mock.Anything, booking.BookingID.String()).Return(booking, nil)

	payload := &request.CancelBooking{BookingID: booking.BookingID.String()}

	_, err := uc.CancelBooking(context.Background(), payload, 42)

	assert.EqualError(t, err, "booking not found")
}

func TestCheckAvailability(t *testing.T) {
	setup()

	date := time.Now().AddDate(0, 0, 7)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	service := testService()
	schedule := entity.StaffSchedule{
		StaffID:     7,
		Weekday:     int(day.Weekday()),
		StartTime:   "09:00",
		EndTime:     "11:00",
		IsAvailable: true,
	}
	existing := entity.Booking{
		StaffID:       7,
		Status:        entity.BookingConfirmed,
		StartDatetime: day.Add(9 * time.Hour),
		EndDatetime:   day.Add(10 * time.Hour),
	}

	repoMock.On("FindServiceByID", mock.Anything, int64(1)).Return(service, nil)
	repoMock.On("FindEligibleStaff", mock.Anything, int64(1)).Return([]entity.Staff{{ID: 7, FullName: "Alice", IsActive: true}}, nil)
	repoMock.On("FindStaffSchedule", mock.Anything, int64(7), int(day.Weekday())).Return(schedule, nil)
	repoMock.On("FindActiveBookingsByStaff", mock.Anything, int64(7), mock.Anything, mock.Anything).Return([]entity.Booking{existing}, nil)

	payload := &request.CheckAvailability{
		ServiceID: 1,
		Date:      day.Format("2006-01-02"),
	}

	slots, err := uc.CheckAvailability(context.Background(), payload)

	assert.NoError(t, err)
	assert.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.False(t, slots[0].IsAvailable)
	assert.Equal(t, "10:00", slots[1].StartTime)
	assert.True(t, slots[1].IsAvailable)
}

func TestSetPaymentExpired(t *testing.T) {
	setup()

	transaction := entity.PaymentTransaction{
		ID:            5,
		TransactionID: "TXNABCDEF12",
		BookingID:     11,
		Status:        entity.TransactionPending,
	}
	booking := entity.Booking{
		ID:            11,
		BookingID:     uuid.New(),
		StaffID:       7,
		Status:        entity.BookingPending,
		StartDatetime: time.Now().Add(48 * time.Hour),
	}

	repoMock.On("FindPaymentTransactionByTransactionID", mock.Anything, "TXNABCDEF12").Return(transaction, nil)
	repoMock.On("FindBookingByID", mock.Anything, int64(11)).Return(booking, nil)
	repoMock.On("ExpirePaymentTransaction", mock.Anything, mock.Anything, mock.Anything, "Payment expired").Return(nil)
	repoMock.On("InvalidateAvailabilityCache", mock.Anything, int64(7), mock.Anything).Return(nil)

	err := uc.SetPaymentExpired(context.Background(), &request.PaymentExpiration{TransactionID: "TXNABCDEF12"})

	assert.NoError(t, err)
	assert.Contains(t, publisher.topics, usecases.TopicBookingCancelled)
}

func TestSetPaymentExpiredAlreadyResolved(t *testing.T) {
	setup()

	transaction := entity.PaymentTransaction{
		ID:            5,
		TransactionID: "TXNABCDEF12",
		BookingID:     11,
		Status:        entity.TransactionSuccess,
	}

	repoMock.On("FindPaymentTransactionByTransactionID", mock.Anything, "TXNABCDEF12").Return(transaction, nil)

	err := uc.SetPaymentExpired(context.Background(), &request.PaymentExpiration{TransactionID: "TXNABCDEF12"})

	assert.NoError(t, err)
	repoMock.AssertNotCalled(t, "ExpirePaymentTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetPaymentExpiredTransactionGone(t *testing.T) {
	setup()

	repoMock.On("FindPaymentTransactionByTransactionID", mock.Anything, "TXNABCDEF12").Return(entity.PaymentTransaction{}, errors.NotFound("payment transaction not found"))

	err := uc.SetPaymentExpired(context.Background(), &request.PaymentExpiration{TransactionID: "TXNABCDEF12"})

	assert.NoError(t, err)
}
