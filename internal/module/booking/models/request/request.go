package request

type CreateBooking struct {
	ServiceID     int64  `json:"service_id" validate:"required"`
	StaffID       int64  `json:"staff_id"`
	StartDatetime string `json:"start_datetime" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=vnpay cash"`
	ReturnURL     string `json:"return_url"`
}

type CancelBooking struct {
	BookingID string `json:"booking_id" validate:"required"`
	Reason    string `json:"reason"`
}

type RescheduleBooking struct {
	BookingID     string `json:"booking_id" validate:"required"`
	StartDatetime string `json:"start_datetime" validate:"required"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string `json:"customer_phone"`
	Notes         string `json:"notes"`
}

type CheckAvailability struct {
	ServiceID int64  `json:"service_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	StaffID   int64  `json:"staff_id"`
}

type PaymentCallback struct {
	Params map[string]string `json:"params" validate:"required"`
}

type PaymentExpiration struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}
