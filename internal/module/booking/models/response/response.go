package response

type UserServiceValidate struct {
	IsValid   bool   `json:"is_valid"`
	UserID    int64  `json:"user_id"`
	EmailUser string `json:"email_user"`
	IsStaff   bool   `json:"is_staff"`
}

type BookingDetail struct {
	BookingID     string  `json:"booking_id"`
	ServiceID     int64   `json:"service_id"`
	StaffID       int64   `json:"staff_id"`
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   string  `json:"end_datetime"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	Notes         string  `json:"notes"`
	FinalPrice    float64 `json:"final_price"`
	CreatedAt     string  `json:"created_at"`
}

type PaymentResult struct {
	Success       bool   `json:"success"`
	PaymentURL    string `json:"payment_url,omitempty"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

type CreateBookingResult struct {
	Booking BookingDetail `json:"booking"`
	Payment PaymentResult `json:"payment"`
}

type PaymentCallbackResult struct {
	Success           bool    `json:"success"`
	TransactionStatus string  `json:"transaction_status"`
	BookingID         string  `json:"booking_id,omitempty"`
	Amount            float64 `json:"amount,omitempty"`
	Message           string  `json:"message"`
}

type AvailableSlot struct {
	StaffID     int64  `json:"staff_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type PendingPaymentCount struct {
	ServiceID int64 `json:"service_id"`
	Total     int   `json:"total"`
}
