package constants

// Roles
const (
	ROLE_ATTENDEE  = "attendee"
	ROLE_ORGANIZER = "organizer"
	ROLE_ADMIN     = "admin"
)

// Event status
const (
	EVENT_DRAFT     = "draft"
	EVENT_PUBLISHED = "published"
	EVENT_CANCELLED = "cancelled"
	EVENT_COMPLETED = "completed"
)

// Booking status
const (
	BOOKING_PENDING                = "pending"
	BOOKING_CONFIRMED              = "confirmed"
	BOOKING_CANCELLATION_REQUESTED = "cancellation_requested"
	BOOKING_CANCELLED              = "cancelled"
	BOOKING_REFUNDED               = "refunded"
)

// Booking payment status
const (
	PAYMENT_PENDING   = "pending"
	PAYMENT_COMPLETED = "completed"
	PAYMENT_FAILED    = "failed"
	PAYMENT_REFUNDED  = "refunded"
)

// PaymentOrder status (gateway-facing casing)
const (
	ORDER_PENDING  = "Pending"
	ORDER_PAID     = "Paid"
	ORDER_FAILED   = "Failed"
	ORDER_REFUNDED = "Refunded"
)

// Review moderation
const (
	MODERATION_PENDING  = "pending"
	MODERATION_APPROVED = "approved"
	MODERATION_REJECTED = "rejected"
)

// Notification types
const (
	NOTIF_BOOKING_CONFIRMED      = "booking_confirmed"
	NOTIF_BOOKING_CANCELLED      = "booking_cancelled"
	NOTIF_CANCELLATION_REQUESTED = "cancellation_requested"
	NOTIF_CANCELLATION_REJECTED  = "cancellation_rejected"
)

// Fees
const (
	PLATFORM_FEE_RATE  = 0.03
	PROCESSING_FEE     = 2.5
	CANCEL_CUTOFF_HRS  = 24
	DEFAULT_PAGE_LIMIT = 10
)

// Messages
const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Failed to read validated input"
	MISSING_LOGIN_INPUT        = "Email and password are required"
	INVALID_EMAIL              = "No account found for this email"
	INVALID_PASSWORD           = "Incorrect password"
	ACCOUNT_NOT_ACTIVE         = "Account is deactivated"
	EMAIL_EXISTS               = "Email is already registered"
	CAN_NOT_HASH_PASSWORD      = "Could not hash password"
	EVENT_NOT_FOUND            = "Event not found"
	EVENT_NOT_PUBLISHED        = "Event is not open for booking"
	BOOKING_NOT_FOUND          = "Booking not found"
	BOOKING_ALREADY_CANCELLED  = "Booking is already cancelled"
	CANCEL_WINDOW_CLOSED       = "Bookings can only be cancelled up to 24 hours before the event starts"
	NOT_BOOKING_OWNER          = "You are not allowed to access this booking"
	REVIEW_NOT_FOUND           = "Review not found"
	DUPLICATE_REVIEW           = "You have already reviewed this event"
	REVIEW_REQUIRES_BOOKING    = "Only attendees with a confirmed booking can review this event"
	REVIEW_EVENT_NOT_ENDED     = "You can review an event only after it has ended"
	VERIFICATION_FAILED        = "Verification Failed"
	PAYMENT_ALREADY_VERIFIED   = "Payment already verified"
	PAYMENT_ORDER_NOT_FOUND    = "Payment order not found"
	EMAIL_REQUIRED_FOR_ORDER   = "A contact email is required to create a payment order"
	NOTIFICATION_NOT_FOUND     = "Notification not found"
)
