package usecases

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"appointment-service/config"
	"appointment-service/internal/module/booking/models/entity"
	"appointment-service/internal/module/booking/models/request"
	"appointment-service/internal/module/booking/models/response"
	"appointment-service/internal/module/booking/repositories"
	"appointment-service/internal/pkg/errors"
	"appointment-service/internal/pkg/vnpay"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	TopicBookingCreated     = "booking_created"
	TopicBookingConfirmed   = "booking_confirmed"
	TopicBookingCancelled   = "booking_cancelled"
	TopicBookingRescheduled = "booking_rescheduled"
	TopicPaymentFailed      = "payment_failed"
)

const (
	datetimeLayout = time.RFC3339
	dateLayout     = "2006-01-02"
	currencyVND    = "VND"
)

type usecase struct {
	repo    repositories.Repositories
	log     *otelzap.Logger
	publish message.Publisher
	gateway *vnpay.Client
	cfg     *config.BookingConfig
}

type Usecase interface {
	// http
	CreateBooking(ctx context.Context, payload *request.CreateBooking, userID int64) (response.CreateBookingResult, error)
	CancelBooking(ctx context.Context, payload *request.CancelBooking, userID int64) (response.BookingDetail, error)
	RescheduleBooking(ctx context.Context, payload *request.RescheduleBooking, userID int64) (response.BookingDetail, error)
	ShowBookings(ctx context.Context, userID int64) ([]response.BookingDetail, error)
	ShowBookingDetail(ctx context.Context, bookingID string, userID int64) (response.BookingDetail, error)
	CheckAvailability(ctx context.Context, payload *request.CheckAvailability) ([]response.AvailableSlot, error)
	CountPendingPayment(ctx context.Context, serviceID int64) (response.PendingPaymentCount, error)
	// gateway callback (http redirect or queue delivery)
	ProcessPaymentCallback(ctx context.Context, params map[string]string) (response.PaymentCallbackResult, error)
	// scheduler
	SetPaymentExpired(ctx context.Context, payload *request.PaymentExpiration) error
}

func New(repo repositories.Repositories, log *otelzap.Logger, publish message.Publisher, gateway *vnpay.Client, cfg *config.BookingConfig) Usecase {
	return &usecase{
		repo:    repo,
		log:     log,
		publish: publish,
		gateway: gateway,
		cfg:     cfg,
	}
}

// CreateBooking reserves a conflict-free slot and opens a payment
// transaction for it. The allocate-and-insert sequence is atomic; the payment
// transaction follows it so an allocator rejection leaves no rows behind.
func (u *usecase) CreateBooking(ctx context.Context, payload *request.CreateBooking, userID int64) (response.CreateBookingResult, error) {
	service, err := u.repo.FindServiceByID(ctx, payload.ServiceID)
	if err != nil {
		return response.CreateBookingResult{}, err
	}

	start, err := time.Parse(datetimeLayout, payload.StartDatetime)
	if err != nil {
		return response.CreateBookingResult{}, errors.BadRequest("invalid start_datetime format")
	}

	now := time.Now()
	if err := validateBookingWindow(service, start, now); err != nil {
		return response.CreateBookingResult{}, err
	}

	// End is derived once from the service duration and never re-computed.
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	count, err := u.repo.CountBookingsForServiceOnDay(ctx, service.ID, start)
	if err != nil {
		return response.CreateBookingResult{}, err
	}
	if count >= service.MaxBookingsPerDay {
		return response.CreateBookingResult{}, errors.Conflict("service is fully booked for this day")
	}

	staffID, err := u.allocateStaff(ctx, service, payload.StaffID, start, end)
	if err != nil {
		return response.CreateBookingResult{}, err
	}

	booking := entity.Booking{
		BookingID:     uuid.New(),
		CustomerID:    userID,
		ServiceID:     service.ID,
		StaffID:       staffID,
		StartDatetime: start,
		EndDatetime:   end,
		Status:        entity.BookingPending,
		PaymentStatus: entity.PaymentStatusPending,
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		CustomerPhone: payload.CustomerPhone,
		Notes:         payload.Notes,
		OriginalPrice: service.Price,
		FinalPrice:    service.Price,
		CreatedAt:     now,
	}

	day := start.Format(dateLayout)
	unlock, err := u.repo.LockStaffDay(ctx, staffID, day)
	if err != nil {
		return response.CreateBookingResult{}, err
	}
	defer unlock()

	changedBy := sql.NullInt64{Int64: userID, Valid: true}
	if err := u.repo.ReserveSlot(ctx, &booking, changedBy); err != nil {
		return response.CreateBookingResult{}, err
	}

	if err := u.repo.InvalidateAvailabilityCache(ctx, staffID, day); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error invalidate availability cache: %v", err))
	}

	paymentResult, err := u.openPaymentTransaction(ctx, &booking, service, payload.PaymentMethod, payload.ReturnURL)
	if err != nil {
		return response.CreateBookingResult{}, err
	}

	detail := toBookingDetail(&booking)
	u.publishEvent(ctx, TopicBookingCreated, detail)

	return response.CreateBookingResult{
		Booking: detail,
		Payment: paymentResult,
	}, nil
}

// openPaymentTransaction creates the pending transaction for the booking. The
// captured amount is the booking's final price, frozen at creation. For the
// gateway method a signed redirect URL is built and an expiry task scheduled;
// cash stays pending and awaits manual settlement.
func (u *usecase) openPaymentTransaction(ctx context.Context, booking *entity.Booking, service entity.Service, method, returnURL string) (response.PaymentResult, error) {
	shortRef := strings.ToUpper(strings.ReplaceAll(booking.BookingID.String(), "-", "")[:8])

	transaction := entity.PaymentTransaction{
		BookingID:     booking.ID,
		PaymentMethod: method,
		Amount:        booking.FinalPrice,
		Currency:      currencyVND,
		Status:        entity.TransactionPending,
		ReturnURL:     returnURL,
		CreatedAt:     time.Now(),
	}

	switch method {
	case entity.PaymentMethodVNPay:
		transaction.TransactionID = "TXN" + shortRef
	case entity.PaymentMethodCash:
		transaction.TransactionID = "CASH" + shortRef
	default:
		return response.PaymentResult{}, errors.BadRequest("unsupported payment method")
	}

	if err := u.repo.InsertPaymentTransaction(ctx, &transaction); err != nil {
		return response.PaymentResult{}, err
	}

	if method == entity.PaymentMethodCash {
		return response.PaymentResult{
			Success:       true,
			TransactionID: transaction.TransactionID,
			Message:       "Cash payment registered, awaiting manual settlement",
		}, nil
	}

	built := u.gateway.BuildPaymentURL(vnpay.PaymentURLRequest{
		OrderID:   booking.BookingID.String(),
		Amount:    booking.FinalPrice,
		OrderInfo: fmt.Sprintf("Payment for %s - %s", service.Name, booking.CustomerName),
		ReturnURL: returnURL,
	})
	transaction.PaymentURL = built.PaymentURL
	transaction.GatewayTransactionID = built.TxnRef

	expirePayload, err := json.Marshal(request.PaymentExpiration{TransactionID: transaction.TransactionID})
	if err != nil {
		return response.PaymentResult{}, errors.InternalServerError("error marshal expiration payload")
	}
	expireAt := time.Now().Add(time.Duration(u.cfg.PaymentExpiryMinutes) * time.Minute)
	taskID, err := u.repo.SetTaskScheduler(ctx, expireAt, expirePayload)
	if err != nil {
		return response.PaymentResult{}, err
	}
	transaction.TaskID = taskID

	if err := u.repo.UpdatePaymentTransaction(ctx, &transaction); err != nil {
		return response.PaymentResult{}, err
	}

	return response.PaymentResult{
		Success:       true,
		PaymentURL:    built.PaymentURL,
		TransactionID: transaction.TransactionID,
		Message:       "Payment URL generated successfully",
	}, nil
}

// ProcessPaymentCallback reconciles a gateway callback against its
// transaction and applies exactly one booking transition. Signature and
// lookup failures never mutate a row, and a transaction already in a
// terminal state short-circuits to a no-op so redelivered callbacks cannot
// re-apply side effects. The returned result is a business outcome, never a
// transport error: callback delivery itself always succeeds.
func (u *usecase) ProcessPaymentCallback(ctx context.Context, params map[string]string) (response.PaymentCallbackResult, error) {
	verified := u.gateway.VerifyCallback(params)
	if !verified.IsValid {
		u.log.Ctx(ctx).Error("payment callback rejected: invalid signature")
		return response.PaymentCallbackResult{
			Success:           false,
			TransactionStatus: entity.TransactionFailed,
			Message:           "Invalid signature",
		}, nil
	}

	transaction, err := u.repo.FindPaymentTransactionByGatewayRef(ctx, verified.TxnRef)
	if err != nil {
		if errors.IsNotFound(err) {
			return response.PaymentCallbackResult{
				Success:           false,
				TransactionStatus: entity.TransactionFailed,
				Message:           "Payment transaction not found",
			}, nil
		}
		return response.PaymentCallbackResult{}, err
	}

	booking, err := u.repo.FindBookingByID(ctx, transaction.BookingID)
	if err != nil {
		return response.PaymentCallbackResult{}, err
	}

	if transaction.IsTerminal() {
		return alreadyProcessedResult(&transaction, &booking, verified.TransactionStatus), nil
	}

	gatewayRef := verified.TxnRef
	if transactionNo := params["vnp_TransactionNo"]; transactionNo != "" {
		gatewayRef = transactionNo
	}
	transaction.GatewayTransactionID = gatewayRef
	transaction.GatewayResponseCode = verified.ResponseCode
	transaction.GatewayResponseMessage = verified.OrderInfo

	succeeded := verified.TransactionStatus == vnpay.TransactionStatusSuccess
	if succeeded && !entity.CanTransition(booking.Status, entity.BookingConfirmed) {
		return alreadyProcessedResult(&transaction, &booking, verified.TransactionStatus), nil
	}

	var history entity.BookingHistory
	if succeeded {
		transaction.Status = entity.TransactionSuccess
		transaction.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}

		history = entity.BookingHistory{
			BookingID:      booking.ID,
			PreviousStatus: booking.Status,
			NewStatus:      entity.BookingConfirmed,
			Notes:          "Payment successful via VNPAY",
		}
		booking.Status = entity.BookingConfirmed
		booking.PaymentStatus = entity.PaymentStatusPaid
		booking.PaymentMethod = entity.PaymentMethodVNPay
		booking.PaymentReference = transaction.GatewayTransactionID
	} else {
		transaction.Status = entity.TransactionFailed

		// Failure keeps the booking status; the history row records it
		// without a transition.
		history = entity.BookingHistory{
			BookingID:      booking.ID,
			PreviousStatus: booking.Status,
			NewStatus:      booking.Status,
			Notes:          fmt.Sprintf("Payment failed via VNPAY. Code: %s", verified.ResponseCode),
		}
		booking.PaymentStatus = entity.PaymentStatusFailed
	}

	if err := u.repo.ResolvePaymentCallback(ctx, &transaction, &booking, &history); err != nil {
		if errors.IsConflict(err) {
			// A concurrent delivery won the race inside the row lock.
			return alreadyProcessedResult(&transaction, &booking, verified.TransactionStatus), nil
		}
		return response.PaymentCallbackResult{}, err
	}

	if transaction.TaskID != "" {
		if err := u.repo.DeleteTaskScheduler(ctx, transaction.TaskID); err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error delete expiry task: %v", err))
		}
	}

	resultMessage := "Payment failed"
	topic := TopicPaymentFailed
	if succeeded {
		resultMessage = "Payment successful"
		topic = TopicBookingConfirmed
	}
	u.publishEvent(ctx, topic, toBookingDetail(&booking))

	return response.PaymentCallbackResult{
		Success:           succeeded,
		TransactionStatus: verified.TransactionStatus,
		BookingID:         booking.BookingID.String(),
		Amount:            verified.Amount,
		Message:           resultMessage,
	}, nil
}

// CancelBooking applies the customer cancel transition when the guard holds.
func (u *usecase) CancelBooking(ctx context.Context, payload *request.CancelBooking, userID int64) (response.BookingDetail, error) {
	booking, err := u.repo.FindBookingByBookingID(ctx, payload.BookingID)
	if err != nil {
		return response.BookingDetail{}, err
	}
	if booking.CustomerID != userID {
		return response.BookingDetail{}, errors.NotFound("booking not found")
	}

	if !booking.CanCancel(time.Now(), u.cfg.CancellationLeadHours) {
		return response.BookingDetail{}, errors.UnprocessableEntity("booking cannot be cancelled")
	}

	reason := payload.Reason
	if reason == "" {
		reason = "No reason provided"
	}
	note := fmt.Sprintf("Booking cancelled by customer. Reason: %s", reason)

	changedBy := sql.NullInt64{Int64: userID, Valid: true}
	if err := u.repo.CancelBooking(ctx, &booking, changedBy, note); err != nil {
		return response.BookingDetail{}, err
	}
	booking.Status = entity.BookingCancelled

	day := booking.StartDatetime.Format(dateLayout)
	if err := u.repo.InvalidateAvailabilityCache(ctx, booking.StaffID, day); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error invalidate availability cache: %v", err))
	}

	detail := toBookingDetail(&booking)
	u.publishEvent(ctx, TopicBookingCancelled, detail)
	return detail, nil
}

// RescheduleBooking moves the booking to a new start. The cancel guard
// doubles as the modification guard, and the conflict check runs again for
// the new interval excluding the booking's own row.
func (u *usecase) RescheduleBooking(ctx context.Context, payload *request.RescheduleBooking, userID int64) (response.BookingDetail, error) {
	booking, err := u.repo.FindBookingByBookingID(ctx, payload.BookingID)
	if err != nil {
		return response.BookingDetail{}, err
	}
	if booking.CustomerID != userID {
		return response.BookingDetail{}, errors.NotFound("booking not found")
	}

	if !booking.CanCancel(time.Now(), u.cfg.CancellationLeadHours) {
		return response.BookingDetail{}, errors.UnprocessableEntity("booking cannot be rescheduled")
	}

	service, err := u.repo.FindServiceByID(ctx, booking.ServiceID)
	if err != nil {
		return response.BookingDetail{}, err
	}

	start, err := time.Parse(datetimeLayout, payload.StartDatetime)
	if err != nil {
		return response.BookingDetail{}, errors.BadRequest("invalid start_datetime format")
	}
	if err := validateBookingWindow(service, start, time.Now()); err != nil {
		return response.BookingDetail{}, err
	}

	previousDay := booking.StartDatetime.Format(dateLayout)
	booking.StartDatetime = start
	booking.EndDatetime = start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	if payload.CustomerName != "" {
		booking.CustomerName = payload.CustomerName
	}
	if payload.CustomerEmail != "" {
		booking.CustomerEmail = payload.CustomerEmail
	}
	if payload.CustomerPhone != "" {
		booking.CustomerPhone = payload.CustomerPhone
	}
	if payload.Notes != "" {
		booking.Notes = payload.Notes
	}

	day := start.Format(dateLayout)
	unlock, err := u.repo.LockStaffDay(ctx, booking.StaffID, day)
	if err != nil {
		return response.BookingDetail{}, err
	}
	defer unlock()

	changedBy := sql.NullInt64{Int64: userID, Valid: true}
	if err := u.repo.RescheduleBooking(ctx, &booking, changedBy, "Booking rescheduled by customer"); err != nil {
		return response.BookingDetail{}, err
	}

	for _, d := range []string{previousDay, day} {
		if err := u.repo.InvalidateAvailabilityCache(ctx, booking.StaffID, d); err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error invalidate availability cache: %v", err))
		}
	}

	detail := toBookingDetail(&booking)
	u.publishEvent(ctx, TopicBookingRescheduled, detail)
	return detail, nil
}

// ShowBookings implements Usecase.
func (u *usecase) ShowBookings(ctx context.Context, userID int64) ([]response.BookingDetail, error) {
	bookings, err := u.repo.FindBookingsByCustomerID(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]response.BookingDetail, 0, len(bookings))
	for i := range bookings {
		details = append(details, toBookingDetail(&bookings[i]))
	}
	return details, nil
}

// ShowBookingDetail implements Usecase.
func (u *usecase) ShowBookingDetail(ctx context.Context, bookingID string, userID int64) (response.BookingDetail, error) {
	booking, err := u.repo.FindBookingByBookingID(ctx, bookingID)
	if err != nil {
		return response.BookingDetail{}, err
	}
	if booking.CustomerID != userID {
		return response.BookingDetail{}, errors.NotFound("booking not found")
	}
	return toBookingDetail(&booking), nil
}

// CheckAvailability lists the day's slots per eligible staff member,
// flagging the ones that conflict with active bookings or fall outside the
// booking window.
func (u *usecase) CheckAvailability(ctx context.Context, payload *request.CheckAvailability) ([]response.AvailableSlot, error) {
	service, err := u.repo.FindServiceByID(ctx, payload.ServiceID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		return nil, errors.BadRequest("invalid date format")
	}

	eligible, err := u.repo.FindEligibleStaff(ctx, service.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	duration := time.Duration(service.DurationMinutes) * time.Minute
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	var slots []response.AvailableSlot
	for _, staff := range eligible {
		if payload.StaffID != 0 && staff.ID != payload.StaffID {
			continue
		}

		schedule, err := u.repo.FindStaffSchedule(ctx, staff.ID, int(date.Weekday()))
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if !schedule.IsAvailable {
			continue
		}

		open, err := minutesOfDay(schedule.StartTime)
		if err != nil {
			continue
		}
		closing, err := minutesOfDay(schedule.EndTime)
		if err != nil {
			continue
		}

		bookings, err := u.repo.FindActiveBookingsByStaff(ctx, staff.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		for minutes := open; minutes+service.DurationMinutes <= closing; minutes += service.DurationMinutes {
			start := date.Add(time.Duration(minutes) * time.Minute)
			end := start.Add(duration)

			available := validateBookingWindow(service, start, now) == nil
			if available {
				for _, booking := range bookings {
					if overlaps(booking.StartDatetime, booking.EndDatetime, start, end) {
						available = false
						break
					}
				}
			}

			slots = append(slots, response.AvailableSlot{
				StaffID:     staff.ID,
				StartTime:   start.Format("15:04"),
				EndTime:     end.Format("15:04"),
				IsAvailable: available,
			})
		}
	}
	return slots, nil
}

// CountPendingPayment implements Usecase.
func (u *usecase) CountPendingPayment(ctx context.Context, serviceID int64) (response.PendingPaymentCount, error) {
	total, err := u.repo.CountPendingPaymentsByService(ctx, serviceID)
	if err != nil {
		return response.PendingPaymentCount{}, err
	}
	return response.PendingPaymentCount{ServiceID: serviceID, Total: total}, nil
}

// SetPaymentExpired handles the scheduled expiry for a gateway transaction
// that never received its callback. Resolved transactions are left alone.
func (u *usecase) SetPaymentExpired(ctx context.Context, payload *request.PaymentExpiration) error {
	transaction, err := u.repo.FindPaymentTransactionByTransactionID(ctx, payload.TransactionID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if transaction.IsTerminal() {
		return nil
	}

	booking, err := u.repo.FindBookingByID(ctx, transaction.BookingID)
	if err != nil {
		return err
	}

	if err := u.repo.ExpirePaymentTransaction(ctx, &transaction, &booking, "Payment expired"); err != nil {
		if errors.IsConflict(err) {
			return nil
		}
		return err
	}
	booking.Status = entity.BookingCancelled

	day := booking.StartDatetime.Format(dateLayout)
	if err := u.repo.InvalidateAvailabilityCache(ctx, booking.StaffID, day); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error invalidate availability cache: %v", err))
	}

	u.publishEvent(ctx, TopicBookingCancelled, toBookingDetail(&booking))
	return nil
}

func alreadyProcessedResult(transaction *entity.PaymentTransaction, booking *entity.Booking, transactionStatus string) response.PaymentCallbackResult {
	return response.PaymentCallbackResult{
		Success:           transaction.Status == entity.TransactionSuccess,
		TransactionStatus: transactionStatus,
		BookingID:         booking.BookingID.String(),
		Amount:            transaction.Amount,
		Message:           "Transaction already processed",
	}
}

func toBookingDetail(booking *entity.Booking) response.BookingDetail {
	return response.BookingDetail{
		BookingID:     booking.BookingID.String(),
		ServiceID:     booking.ServiceID,
		StaffID:       booking.StaffID,
		StartDatetime: booking.StartDatetime.Format(datetimeLayout),
		EndDatetime:   booking.EndDatetime.Format(datetimeLayout),
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		Notes:         booking.Notes,
		FinalPrice:    booking.FinalPrice,
		CreatedAt:     booking.CreatedAt.Format(datetimeLayout),
	}
}

func (u *usecase) publishEvent(ctx context.Context, topic string, payload interface{}) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error marshal event payload: %v", err))
		return
	}
	if err := u.publish.Publish(topic, message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish %s event: %v", topic, err))
	}
}
