package model

import "time"

type Booking struct {
	DTO
	BookingNumber  string        `gorm:"unique;size:40" json:"bookingNumber"`
	UserID         uint          `gorm:"index" json:"userId"`
	User           *User         `json:"user,omitempty"`
	EventID        uint          `gorm:"index" json:"eventId"`
	Event          *Event        `json:"event,omitempty"`
	Items          []BookingItem `gorm:"foreignKey:BookingID" json:"items"`
	Attendees      []Attendee    `gorm:"foreignKey:BookingID" json:"attendees"`
	TotalAmount    float64       `json:"totalAmount"`
	PlatformFee    float64       `json:"platformFee"`
	ProcessingFee  float64       `json:"processingFee"`
	FinalAmount    float64       `json:"finalAmount"`
	Status         string        `gorm:"size:30;default:pending;index" json:"status"`
	PaymentStatus  string        `gorm:"size:20;default:pending" json:"paymentStatus"`
	PaymentMethod  string        `gorm:"size:30" json:"paymentMethod"`
	PaymentOrderID *uint         `json:"paymentOrderId,omitempty"`
	BillingName    string        `json:"billingName"`
	BillingEmail   string        `json:"billingEmail"`
	BillingAddress string        `json:"billingAddress"`
	BillingCity    string        `json:"billingCity"`

	Refund              RefundDetails         `gorm:"embedded;embeddedPrefix:refund_" json:"refundDetails"`
	CancellationRequest CancellationRequest   `gorm:"embedded;embeddedPrefix:cancel_req_" json:"cancellationRequest"`
	CancellationReject  CancellationRejection `gorm:"embedded;embeddedPrefix:cancel_rej_" json:"cancellationRejection"`
}

// BookingItem snapshots the tier at booking time so later catalog edits
// do not change historical bookings.
type BookingItem struct {
	DTO
	BookingID    uint    `gorm:"index" json:"bookingId"`
	TicketTypeID uint    `json:"ticketTypeId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

type Attendee struct {
	DTO
	BookingID  uint   `gorm:"index" json:"bookingId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	TicketCode string `gorm:"unique;size:40" json:"ticketCode"`
	CheckedIn  bool   `gorm:"default:false" json:"checkedIn"`
}

type RefundDetails struct {
	Amount        float64    `json:"amount"`
	TransactionID string     `json:"transactionId"`
	Reason        string     `json:"reason"`
	RefundedAt    *time.Time `json:"refundedAt,omitempty"`
}

type CancellationRequest struct {
	Requested   bool       `json:"requested"`
	Reason      string     `json:"reason"`
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
}

type CancellationRejection struct {
	Reason     string     `json:"reason"`
	RejectedAt *time.Time `json:"rejectedAt,omitempty"`
	RejectedBy uint       `json:"rejectedBy"`
}

type BookingLineInput struct {
	TicketTypeID uint `json:"ticketTypeId" validate:"required"`
	Quantity     int  `json:"quantity" validate:"required,gt=0"`
}

type AttendeeInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type BillingAddressInput struct {
	Name    string `json:"name"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	City    string `json:"city"`
}

type CreateBookingInput struct {
	EventID        uint                `json:"eventId" validate:"required"`
	Items          []BookingLineInput  `json:"items" validate:"required,min=1,dive"`
	Attendees      []AttendeeInput     `json:"attendees" validate:"required,min=1,dive"`
	BillingAddress BillingAddressInput `json:"billingAddress"`
	PaymentMethod  string              `json:"paymentMethod"`
}

type CancelBookingInput struct {
	Reason string `json:"reason"`
}

type RejectCancellationInput struct {
	Reason string `json:"reason" validate:"required"`
}
