package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"appointment-service/config"
	"appointment-service/internal/module/booking/models/entity"
	"appointment-service/internal/module/booking/models/response"
	"appointment-service/internal/pkg/errors"
	"appointment-service/internal/pkg/scheduler"

	"github.com/go-redsync/redsync/v4"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	serviceCacheTTL  = 5 * time.Minute
	slotLockExpiry   = 8 * time.Second
	defaultTaskQueue = "default"
)

type repositories struct {
	db                 *sqlx.DB
	log                *otelzap.Logger
	httpClient         *circuit.HTTPClient
	redisClient        *redis.Client
	rs                 *redsync.Redsync
	schedulerClient    *asynq.Client
	schedulerInspector *asynq.Inspector
	cfgUserService     *config.UserServiceConfig
}

type Repositories interface {
	// http
	ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error)
	// redis
	LockStaffDay(ctx context.Context, staffID int64, day string) (func() (bool, error), error)
	InvalidateAvailabilityCache(ctx context.Context, staffID int64, day string) error
	// db reads
	FindServiceByID(ctx context.Context, serviceID int64) (entity.Service, error)
	FindEligibleStaff(ctx context.Context, serviceID int64) ([]entity.Staff, error)
	FindStaffSchedule(ctx context.Context, staffID int64, weekday int) (entity.StaffSchedule, error)
	FindActiveBookingsByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]entity.Booking, error)
	CountBookingsForServiceOnDay(ctx context.Context, serviceID int64, day time.Time) (int, error)
	FindBookingByID(ctx context.Context, id int64) (entity.Booking, error)
	FindBookingByBookingID(ctx context.Context, bookingID string) (entity.Booking, error)
	FindBookingsByCustomerID(ctx context.Context, customerID int64) ([]entity.Booking, error)
	FindPaymentTransactionByGatewayRef(ctx context.Context, gatewayRef string) (entity.PaymentTransaction, error)
	FindPaymentTransactionByTransactionID(ctx context.Context, transactionID string) (entity.PaymentTransaction, error)
	CountPendingPaymentsByService(ctx context.Context, serviceID int64) (int, error)
	// db atomic units
	ReserveSlot(ctx context.Context, booking *entity.Booking, changedBy sql.NullInt64) error
	RescheduleBooking(ctx context.Context, booking *entity.Booking, changedBy sql.NullInt64, note string) error
	CancelBooking(ctx context.Context, booking *entity.Booking, changedBy sql.NullInt64, note string) error
	InsertPaymentTransaction(ctx context.Context, transaction *entity.PaymentTransaction) error
	UpdatePaymentTransaction(ctx context.Context, transaction *entity.PaymentTransaction) error
	ResolvePaymentCallback(ctx context.Context, transaction *entity.PaymentTransaction, booking *entity.Booking, history *entity.BookingHistory) error
	ExpirePaymentTransaction(ctx context.Context, transaction *entity.PaymentTransaction, booking *entity.Booking, note string) error
	// scheduler
	SetTaskScheduler(ctx context.Context, executeAt time.Time, payload []byte) (string, error)
	DeleteTaskScheduler(ctx context.Context, taskID string) error
}

func New(db *sqlx.DB, log *otelzap.Logger, httpClient *circuit.HTTPClient, redisClient *redis.Client, rs *redsync.Redsync, schedulerClient *asynq.Client, schedulerInspector *asynq.Inspector, cfgUserService *config.UserServiceConfig) Repositories {
	return &repositories{
		db:                 db,
		log:                log,
		httpClient:         httpClient,
		redisClient:        redisClient,
		rs:                 rs,
		schedulerClient:    schedulerClient,
		schedulerInspector: schedulerInspector,
		cfgUserService:     cfgUserService,
	}
}

// ValidateToken implements Repositories.
func (r *repositories) ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error) {
	url := fmt.Sprintf("http://%s:%s/api/private/token/validate?token=%s", r.cfgUserService.Host, r.cfgUserService.Port, token)
	resp, err := r.httpClient.Get(url)
	if err != nil {
		return response.UserServiceValidate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		r.log.Ctx(ctx).Error(fmt.Sprintf("invalid token, status code: %d", resp.StatusCode))
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	var respData response.UserServiceValidate
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&respData); err != nil {
		return response.UserServiceValidate{}, err
	}

	if !respData.IsValid {
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	return respData, nil
}

// LockStaffDay implements Repositories. The mutex serializes reservations per
// staff and day across service instances; the database lock inside
// ReserveSlot remains the authoritative guard.
func (r *repositories) LockStaffDay(ctx context.Context, staffID int64, day string) (func() (bool, error), error) {
	mutex := r.rs.NewMutex(
		fmt.Sprintf("booking:slot:%d:%s", staffID, day),
		redsync.WithExpiry(slotLockExpiry),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.Conflict("time slot is being booked, please retry")
	}
	return func() (bool, error) {
		return mutex.UnlockContext(ctx)
	}, nil
}

// InvalidateAvailabilityCache implements Repositories.
func (r *repositories) InvalidateAvailabilityCache(ctx context.Context, staffID int64, day string) error {
	key := fmt.Sprintf("availability:%d:%s", staffID, day)
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return errors.InternalServerError("error invalidate availability cache")
	}
	return nil
}

// FindServiceByID implements Repositories. Cache-aside on redis; only active
// services are returned.
func (r *repositories) FindServiceByID(ctx context.Context, serviceID int64) (entity.Service, error) {
	key := fmt.Sprintf("service:%d", serviceID)

	var service entity.Service
	cached, err := r.redisClient.Get(ctx, key).Result()
	if err == nil {
		if err := json.Unmarshal([]byte(cached), &service); err == nil {
			return service, nil
		}
	}

	query := `SELECT * FROM services WHERE id = $1 AND is_active = true`
	err = r.db.GetContext(ctx, &service, query, serviceID)
	if err == sql.ErrNoRows {
		return entity.Service{}, errors.NotFound("service not found")
	}
	if err != nil {
		return entity.Service{}, errors.InternalServerError("error find service by id")
	}

	if payload, err := json.Marshal(service); err == nil {
		r.redisClient.Set(ctx, key, payload, serviceCacheTTL)
	}

	return service, nil
}

// FindEligibleStaff implements Repositories. Ascending staff id keeps
// auto-assignment deterministic.
func (r *repositories) FindEligibleStaff(ctx context.Context, serviceID int64) ([]entity.Staff, error) {
	query := `SELECT s.id, s.full_name, s.is_active
		FROM staff s
		JOIN service_staff ss ON ss.staff_id = s.id
		WHERE ss.service_id = $1 AND s.is_active = true
		ORDER BY s.id ASC`

	var staff []entity.Staff
	if err := r.db.SelectContext(ctx, &staff, query, serviceID); err != nil {
		return nil, errors.InternalServerError("error find eligible staff")
	}
	return staff, nil
}

// FindStaffSchedule implements Repositories.
func (r *repositories) FindStaffSchedule(ctx context.Context, staffID int64, weekday int) (entity.StaffSchedule, error) {
	query := `SELECT * FROM staff_schedules WHERE staff_id = $1 AND weekday = $2`

	var schedule entity.StaffSchedule
	err := r.db.GetContext(ctx, &schedule, query, staffID, weekday)
	if err == sql.ErrNoRows {
		return entity.StaffSchedule{}, errors.NotFound("staff schedule not found")
	}
	if err != nil {
		return entity.StaffSchedule{}, errors.InternalServerError("error find staff schedule")
	}
	return schedule, nil
}

// FindActiveBookingsByStaff implements Repositories.
func (r *repositories) FindActiveBookingsByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]entity.Booking, error) {
	query := `SELECT * FROM bookings
		WHERE staff_id = $1 AND status = ANY($2)
		AND start_datetime < $3 AND end_datetime > $4
		ORDER BY start_datetime ASC`

	var bookings []entity.Booking
	err := r.db.SelectContext(ctx, &bookings, query, staffID, pq.Array(entity.ActiveBookingStatuses), to, from)
	if err != nil {
		return nil, errors.InternalServerError("error find active bookings by staff")
	}
	return bookings, nil
}

// CountBookingsForServiceOnDay implements Repositories.
func (r *repositories) CountBookingsForServiceOnDay(ctx context.Context, serviceID int64, day time.Time) (int, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `SELECT COUNT(*) FROM bookings
		WHERE service_id = $1 AND status = ANY($2)
		AND start_datetime >= $3 AND start_datetime < $4`

	var total int
	err := r.db.GetContext(ctx, &total, query, serviceID, pq.Array(entity.ActiveBookingStatuses), dayStart, dayEnd)
	if err != nil {
		return 0, errors.InternalServerError("error count bookings for service")
	}
	return total, nil
}

// FindBookingByID implements Repositories.
func (r *repositories) FindBookingByID(ctx context.Context, id int64) (entity.Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error find booking by id")
	}
	return booking, nil
}

// FindBookingByBookingID implements Repositories. Looks up by the external
// opaque identifier, not the row id.
func (r *repositories) FindBookingByBookingID(ctx context.Context, bookingID string) (entity.Booking, error) {
	query := `SELECT * FROM bookings WHERE booking_id = $1`

	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, bookingID)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error find booking by booking id")
	}
	return booking, nil
}

// FindBookingsByCustomerID implements Repositories.
func (r *repositories) FindBookingsByCustomerID(ctx context.Context, customerID int64) ([]entity.Booking, error) {
	query := `SELECT * FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC`

	var bookings []entity.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, customerID); err != nil {
		return nil, errors.InternalServerError("error find bookings by customer id")
	}
	return bookings, nil
}

// FindPaymentTransactionByGatewayRef implements Repositories.
func (r *repositories) FindPaymentTransactionByGatewayRef(ctx context.Context, gatewayRef string) (entity.PaymentTransaction, error) {
	query := `SELECT * FROM payment_transactions WHERE gateway_transaction_id = $1`

	var transaction entity.PaymentTransaction
	err := r.db.GetContext(ctx, &transaction, query, gatewayRef)
	if err == sql.ErrNoRows {
		return entity.PaymentTransaction{}, errors.NotFound("payment transaction not found")
	}
	if err != nil {
		return entity.PaymentTransaction{}, errors.InternalServerError("error find payment transaction by gateway ref")
	}
	return transaction, nil
}

// FindPaymentTransactionByTransactionID implements Repositories.
func (r *repositories) FindPaymentTransactionByTransactionID(ctx context.Context, transactionID string) (entity.PaymentTransaction, error) {
	query := `SELECT * FROM payment_transactions WHERE transaction_id = $1`

	var transaction entity.PaymentTransaction
	err := r.db.GetContext(ctx, &transaction, query, transactionID)
	if err == sql.ErrNoRows {
		return entity.PaymentTransaction{}, errors.NotFound("payment transaction not found")
	}
	if err != nil {
		return entity.PaymentTransaction{}, errors.InternalServerError("error find payment transaction by transaction id")
	}
	return transaction, nil
}

// CountPendingPaymentsByService implements Repositories.
func (r *repositories) CountPendingPaymentsByService(ctx context.Context, serviceID int64) (int, error) {
	query := `SELECT COUNT(*) FROM payment_transactions pt
		JOIN bookings b ON b.id = pt.booking_id
		WHERE b.service_id = $1 AND pt.status = $2`

	var total int
	err := r.db.GetContext(ctx, &total, query, serviceID, entity.TransactionPending)
	if err != nil {
		return 0, errors.InternalServerError("error count pending payments")
	}
	return total, nil
}

// ReserveSlot implements Repositories. The staff row lock serializes
// concurrent reservations for the same staff member, so the conflict check
// and the insert form one atomic check-then-act unit. The initial history row
// is written in the same transaction.
func (r *repositories) ReserveSlot(ctx context.Context, booking *entity.Booking, changedBy sql.NullInt64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.InternalServerError("error starting transaction")
	}

	var staffID int64
	err = tx.GetContext(ctx, &staffID, `SELECT id FROM staff WHERE id = $1 FOR UPDATE`, booking.StaffID)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error locking staff row")
	}

	var conflictIDs []int64
	err = tx.SelectContext(ctx, &conflictIDs, `SELECT id FROM bookings
		WHERE staff_id = $1 AND status = ANY($2)
		AND start_datetime < $3 AND end_datetime > $4`,
		booking.StaffID, pq.Array(entity.ActiveBookingStatuses), booking.EndDatetime, booking.StartDatetime)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error checking slot conflicts")
	}
	if len(conflictIDs) > 0 {
		tx.Rollback()
		return errors.Conflict("time slot not available")
	}

	err = tx.GetContext(ctx, &booking.ID, `INSERT INTO bookings (
			booking_id, customer_id, service_id, staff_id, start_datetime, end_datetime,
			status, payment_status, customer_name, customer_email, customer_phone, notes,
			original_price, final_price, discount_amount, payment_method, payment_reference, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`,
		booking.BookingID, booking.CustomerID, booking.ServiceID, booking.StaffID,
		booking.StartDatetime, booking.EndDatetime, booking.Status, booking.PaymentStatus,
		booking.CustomerName, booking.CustomerEmail, booking.CustomerPhone, booking.Notes,
		booking.OriginalPrice, booking.FinalPrice, booking.DiscountAmount,
		booking.PaymentMethod, booking.PaymentReference, booking.CreatedAt)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error inserting booking")
	}

	if err := insertHistoryTx(ctx, tx, &entity.BookingHistory{
		BookingID:      booking.ID,
		PreviousStatus: "",
		NewStatus:      entity.BookingPending,
		ChangedBy:      changedBy,
		Notes:          "Booking created",
	}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.InternalServerError("error committing transaction")
	}
	return nil
}

// RescheduleBooking implements Repositories. Re-runs the conflict check for
// the new interval, excluding the booking's own row, inside the same
// transaction as the update.
func (r *repositories) RescheduleBooking(ctx context.Context, booking *entity.Booking, changedBy sql.NullInt64, note string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.InternalServerError("error starting transaction")
	}

	var staffID int64
	err = tx.GetContext(ctx, &staffID, `SELECT id FROM staff WHERE id = $1 FOR UPDATE`, booking.StaffID)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error locking staff row")
	}

	var conflictIDs []int64
	err = tx.SelectContext(ctx, &conflictIDs, `SELECT id FROM bookings
		WHERE staff_id = $1 AND status = ANY($2)
		AND start_datetime < $3 AND end_datetime > $4 AND id <> $5`,
		booking.StaffID, pq.Array(entity.ActiveBookingStatuses), booking.EndDatetime, booking.StartDatetime, booking.ID)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error checking slot conflicts")
	}
	if len(conflictIDs) > 0 {
		tx.Rollback()
		return errors.Conflict("new time slot not available")
	}

	_, err = tx.ExecContext(ctx, `UPDATE bookings SET
			start_datetime = $1, end_datetime = $2,
			customer_name = $3, customer_email = $4, customer_phone = $5, notes = $6,
			updated_at = NOW()
		WHERE id = $7`,
		booking.StartDatetime, booking.EndDatetime,
		booking.CustomerName, booking.CustomerEmail, booking.CustomerPhone, booking.Notes,
		booking.ID)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error updating booking")
	}

	if err := insertHistoryTx(ctx, tx, &entity.BookingHistory{
		BookingID:      booking.ID,
		PreviousStatus: booking.Status,
		NewStatus:      booking.Status,
		ChangedBy:      changedBy,
		Notes:          note,
	}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.InternalServerError("error committing transaction")
	}
	return nil
}

// CancelBooking implements Repositories. The status predicate in the update
// makes the transition optimistic: a concurrent transition away from the
// observed status voids the cancel.
func (r *repositories) CancelBooking(ctx context.Context, booking *entity.Booking, changedBy sql.NullInt64, note string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.InternalServerError("error starting transaction")
	}

	result, err := tx.ExecContext(ctx, `UPDATE bookings SET
			status = $1, cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		entity.BookingCancelled, booking.ID, booking.Status)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error cancelling booking")
	}
	affected, err := result.RowsAffected()
	if err != nil || affected != 1 {
		tx.Rollback()
		return errors.Conflict("booking status changed, please retry")
	}

	if err := insertHistoryTx(ctx, tx, &entity.BookingHistory{
		BookingID:      booking.ID,
		PreviousStatus: booking.Status,
		NewStatus:      entity.BookingCancelled,
		ChangedBy:      changedBy,
		Notes:          note,
	}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.InternalServerError("error committing transaction")
	}
	return nil
}

// InsertPaymentTransaction implements Repositories.
func (r *repositories) InsertPaymentTransaction(ctx context.Context, transaction *entity.PaymentTransaction) error {
	err := r.db.GetContext(ctx, &transaction.ID, `INSERT INTO payment_transactions (
			transaction_id, booking_id, payment_method, amount, currency, status,
			gateway_transaction_id, gateway_response_code, gateway_response_message,
			payment_url, return_url, task_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		transaction.TransactionID, transaction.BookingID, transaction.PaymentMethod,
		transaction.Amount, transaction.Currency, transaction.Status,
		transaction.GatewayTransactionID, transaction.GatewayResponseCode, transaction.GatewayResponseMessage,
		transaction.PaymentURL, transaction.ReturnURL, transaction.TaskID, transaction.CreatedAt)
	if err != nil {
		return errors.InternalServerError("error inserting payment transaction")
	}
	return nil
}

// UpdatePaymentTransaction implements Repositories.
func (r *repositories) UpdatePaymentTransaction(ctx context.Context, transaction *entity.PaymentTransaction) error {
	_, err := r.db.ExecContext(ctx, `UPDATE payment_transactions SET
			gateway_transaction_id = $1, payment_url = $2, task_id = $3, updated_at = NOW()
		WHERE id = $4`,
		transaction.GatewayTransactionID, transaction.PaymentURL, transaction.TaskID, transaction.ID)
	if err != nil {
		return errors.InternalServerError("error updating payment transaction")
	}
	return nil
}

// ResolvePaymentCallback implements Repositories. One transaction covers the
// payment resolution, the booking transition and the history row; the row
// lock re-checks that the transaction is still unresolved so a duplicate
// callback racing past the usecase guard cannot apply side effects twice.
func (r *repositories) ResolvePaymentCallback(ctx context.Context, transaction *entity.PaymentTransaction, booking *entity.Booking, history *entity.BookingHistory) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.InternalServerError("error starting transaction")
	}

	var currentStatus string
	err = tx.GetContext(ctx, &currentStatus, `SELECT status FROM payment_transactions WHERE id = $1 FOR UPDATE`, transaction.ID)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error locking payment transaction")
	}
	if currentStatus != entity.TransactionPending && currentStatus != entity.TransactionProcessing {
		tx.Rollback()
		return errors.Conflict("payment transaction already resolved")
	}

	_, err = tx.ExecContext(ctx, `UPDATE payment_transactions SET
			status = $1, gateway_transaction_id = $2, gateway_response_code = $3,
			gateway_response_message = $4, completed_at = $5, updated_at = NOW()
		WHERE id = $6`,
		transaction.Status, transaction.GatewayTransactionID, transaction.GatewayResponseCode,
		transaction.GatewayResponseMessage, transaction.CompletedAt, transaction.ID)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error updating payment transaction")
	}

	_, err = tx.ExecContext(ctx, `UPDATE bookings SET
			status = $1, payment_status = $2, payment_method = $3, payment_reference = $4, updated_at = NOW()
		WHERE id = $5`,
		booking.Status, booking.PaymentStatus, booking.PaymentMethod, booking.PaymentReference, booking.ID)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error updating booking")
	}

	if err := insertHistoryTx(ctx, tx, history); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.InternalServerError("error committing transaction")
	}
	return nil
}

// ExpirePaymentTransaction implements Repositories. Cancels a transaction the
// gateway never answered for and the still-pending booking holding the slot.
func (r *repositories) ExpirePaymentTransaction(ctx context.Context, transaction *entity.PaymentTransaction, booking *entity.Booking, note string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.InternalServerError("error starting transaction")
	}

	var currentStatus string
	err = tx.GetContext(ctx, &currentStatus, `SELECT status FROM payment_transactions WHERE id = $1 FOR UPDATE`, transaction.ID)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error locking payment transaction")
	}
	if currentStatus != entity.TransactionPending {
		tx.Rollback()
		return errors.Conflict("payment transaction already resolved")
	}

	_, err = tx.ExecContext(ctx, `UPDATE payment_transactions SET
			status = $1, updated_at = NOW()
		WHERE id = $2`,
		entity.TransactionCancelled, transaction.ID)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error updating payment transaction")
	}

	_, err = tx.ExecContext(ctx, `UPDATE bookings SET
			status = $1, cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		entity.BookingCancelled, booking.ID, entity.BookingPending)
	if err != nil {
		tx.Rollback()
		return errors.InternalServerError("error cancelling booking")
	}

	if err := insertHistoryTx(ctx, tx, &entity.BookingHistory{
		BookingID:      booking.ID,
		PreviousStatus: booking.Status,
		NewStatus:      entity.BookingCancelled,
		Notes:          note,
	}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.InternalServerError("error committing transaction")
	}
	return nil
}

// SetTaskScheduler implements Repositories.
func (r *repositories) SetTaskScheduler(ctx context.Context, executeAt time.Time, payload []byte) (string, error) {
	task := asynq.NewTask(scheduler.TypeSetPaymentExpired, payload)
	info, err := r.schedulerClient.EnqueueContext(ctx, task, asynq.ProcessAt(executeAt))
	if err != nil {
		return "", errors.InternalServerError("error scheduling task")
	}
	return info.ID, nil
}

// DeleteTaskScheduler implements Repositories.
func (r *repositories) DeleteTaskScheduler(ctx context.Context, taskID string) error {
	if err := r.schedulerInspector.DeleteTask(defaultTaskQueue, taskID); err != nil {
		return errors.InternalServerError("error deleting scheduled task")
	}
	return nil
}

func insertHistoryTx(ctx context.Context, tx *sqlx.Tx, history *entity.BookingHistory) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO booking_histories (
			booking_id, previous_status, new_status, changed_by, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, NOW())`,
		history.BookingID, history.PreviousStatus, history.NewStatus, history.ChangedBy, history.Notes)
	if err != nil {
		return errors.InternalServerError("error inserting booking history")
	}
	return nil
}
