package model

type PaymentOrder struct {
	DTO
	UserID            uint     `gorm:"index" json:"userId"`
	User              *User    `json:"user,omitempty"`
	EventID           uint     `gorm:"index" json:"eventId"`
	Event             *Event   `json:"event,omitempty"`
	BookingID         *uint    `json:"bookingId,omitempty"`
	Booking           *Booking `json:"booking,omitempty"`
	Amount            float64  `json:"amount"` // major currency units
	Currency          string   `gorm:"size:8;default:INR" json:"currency"`
	Receipt           string   `gorm:"size:64" json:"receipt"`
	RazorpayOrderID   string   `gorm:"unique;size:64" json:"razorpayOrderId"`
	RazorpayPaymentID string   `gorm:"size:64" json:"razorpayPaymentId"`
	PaymentStatus     string   `gorm:"size:20;default:Pending" json:"paymentStatus"` // Pending, Paid, Failed, Refunded
}

type CreateOrderInput struct {
	EventID        uint                `json:"eventId" validate:"required"`
	Items          []BookingLineInput  `json:"items" validate:"required,min=1,dive"`
	Attendees      []AttendeeInput     `json:"attendees" validate:"required,min=1,dive"`
	BillingAddress BillingAddressInput `json:"billingAddress"`
}

// VerifyPaymentInput carries the fields Razorpay checkout posts back.
type VerifyPaymentInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

type PaymentFailedInput struct {
	RazorpayOrderID string `json:"razorpay_order_id" validate:"required"`
	Reason          string `json:"reason"`
}
