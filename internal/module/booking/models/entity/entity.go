package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Booking statuses.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
	BookingNoShow     = "no_show"
)

// Booking payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment transaction statuses.
const (
	TransactionPending    = "pending"
	TransactionProcessing = "processing"
	TransactionSuccess    = "success"
	TransactionFailed     = "failed"
	TransactionCancelled  = "cancelled"
	TransactionRefunded   = "refunded"
)

// Payment methods.
const (
	PaymentMethodVNPay = "vnpay"
	PaymentMethodCash  = "cash"
)

type Service struct {
	ID                 int64        `db:"id"`
	Name               string       `db:"name"`
	DurationMinutes    int          `db:"duration_minutes"`
	Price              float64      `db:"price"`
	IsActive           bool         `db:"is_active"`
	AdvanceBookingDays int          `db:"advance_booking_days"`
	MinAdvanceHours    int          `db:"min_advance_hours"`
	MaxBookingsPerDay  int          `db:"max_bookings_per_day"`
	CreatedAt          time.Time    `db:"created_at"`
	UpdatedAt          sql.NullTime `db:"updated_at"`
}

type Staff struct {
	ID       int64  `db:"id"`
	FullName string `db:"full_name"`
	IsActive bool   `db:"is_active"`
}

// StaffSchedule holds one working-hours interval per (staff, weekday).
// Times are local times of day in "15:04" form.
type StaffSchedule struct {
	ID          int64  `db:"id"`
	StaffID     int64  `db:"staff_id"`
	Weekday     int    `db:"weekday"`
	StartTime   string `db:"start_time"`
	EndTime     string `db:"end_time"`
	IsAvailable bool   `db:"is_available"`
}

type Booking struct {
	ID               int64        `db:"id"`
	BookingID        uuid.UUID    `db:"booking_id"`
	CustomerID       int64        `db:"customer_id"`
	ServiceID        int64        `db:"service_id"`
	StaffID          int64        `db:"staff_id"`
	StartDatetime    time.Time    `db:"start_datetime"`
	EndDatetime      time.Time    `db:"end_datetime"`
	Status           string       `db:"status"`
	PaymentStatus    string       `db:"payment_status"`
	CustomerName     string       `db:"customer_name"`
	CustomerEmail    string       `db:"customer_email"`
	CustomerPhone    string       `db:"customer_phone"`
	Notes            string       `db:"notes"`
	OriginalPrice    float64      `db:"original_price"`
	FinalPrice       float64      `db:"final_price"`
	DiscountAmount   float64      `db:"discount_amount"`
	PaymentMethod    string       `db:"payment_method"`
	PaymentReference string       `db:"payment_reference"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        sql.NullTime `db:"updated_at"`
	CancelledAt      sql.NullTime `db:"cancelled_at"`
}

// BookingHistory is append-only. One row per status transition, never mutated.
type BookingHistory struct {
	ID             int64         `db:"id"`
	BookingID      int64         `db:"booking_id"`
	PreviousStatus string        `db:"previous_status"`
	NewStatus      string        `db:"new_status"`
	ChangedBy      sql.NullInt64 `db:"changed_by"`
	Notes          string        `db:"notes"`
	CreatedAt      time.Time     `db:"created_at"`
}

type PaymentTransaction struct {
	ID                     int64        `db:"id"`
	TransactionID          string       `db:"transaction_id"`
	BookingID              int64        `db:"booking_id"`
	PaymentMethod          string       `db:"payment_method"`
	Amount                 float64      `db:"amount"`
	Currency               string       `db:"currency"`
	Status                 string       `db:"status"`
	GatewayTransactionID   string       `db:"gateway_transaction_id"`
	GatewayResponseCode    string       `db:"gateway_response_code"`
	GatewayResponseMessage string       `db:"gateway_response_message"`
	PaymentURL             string       `db:"payment_url"`
	ReturnURL              string       `db:"return_url"`
	TaskID                 string       `db:"task_id"`
	CreatedAt              time.Time    `db:"created_at"`
	UpdatedAt              sql.NullTime `db:"updated_at"`
	CompletedAt            sql.NullTime `db:"completed_at"`
}

// ActiveBookingStatuses are the statuses that count toward slot conflicts.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed, BookingInProgress}

// bookingTransitions lists every legal status transition. Customer-facing
// flows only drive pending->confirmed and the two cancel edges; the rest
// belong to staff tooling but keep the guards truthful.
var bookingTransitions = map[string][]string{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingInProgress, BookingCancelled, BookingNoShow},
	BookingInProgress: {BookingCompleted},
}

func CanTransition(from, to string) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether a customer may still cancel (or reschedule) the
// booking: not in a terminal status and the start is beyond the lead window.
func (b *Booking) CanCancel(now time.Time, leadHours int) bool {
	switch b.Status {
	case BookingCancelled, BookingCompleted, BookingNoShow:
		return false
	}
	return b.StartDatetime.After(now.Add(time.Duration(leadHours) * time.Hour))
}

// IsTerminal reports whether a payment transaction has reached a state the
// gateway callback may no longer change.
func (t *PaymentTransaction) IsTerminal() bool {
	return t.Status != TransactionPending && t.Status != TransactionProcessing
}
