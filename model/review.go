package model

type Review struct {
	DTO
	UserID           uint     `gorm:"uniqueIndex:idx_reviews_user_event" json:"userId"`
	User             *User    `json:"user,omitempty"`
	EventID          uint     `gorm:"uniqueIndex:idx_reviews_user_event" json:"eventId"`
	BookingID        uint     `json:"bookingId"`
	Rating           int      `json:"rating"` // 1-5
	VenueRating      *int     `json:"venueRating,omitempty"`
	OrganizerRating  *int     `json:"organizerRating,omitempty"`
	ValueRating      *int     `json:"valueRating,omitempty"`
	Title            string   `gorm:"size:150" json:"title"`
	Comment          string   `json:"comment"`
	IsPublic         bool     `gorm:"default:true" json:"isPublic"`
	ModerationStatus string   `gorm:"size:20;default:pending" json:"moderationStatus"` // pending, approved, rejected
	HelpfulVotes     int64    `gorm:"default:0" json:"helpfulVotes"`
	ReportCount      int64    `gorm:"default:0" json:"reportCount"`
}

type CreateReviewInput struct {
	EventID         uint   `json:"eventId" validate:"required"`
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	VenueRating     *int   `json:"venueRating" validate:"omitempty,min=1,max=5"`
	OrganizerRating *int   `json:"organizerRating" validate:"omitempty,min=1,max=5"`
	ValueRating     *int   `json:"valueRating" validate:"omitempty,min=1,max=5"`
	Title           string `json:"title" validate:"omitempty,max=150"`
	Comment         string `json:"comment"`
	IsPublic        *bool  `json:"isPublic"`
}

type UpdateReviewInput struct {
	Rating          *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	VenueRating     *int    `json:"venueRating" validate:"omitempty,min=1,max=5"`
	OrganizerRating *int    `json:"organizerRating" validate:"omitempty,min=1,max=5"`
	ValueRating     *int    `json:"valueRating" validate:"omitempty,min=1,max=5"`
	Title           *string `json:"title" validate:"omitempty,max=150"`
	Comment         *string `json:"comment"`
	IsPublic        *bool   `json:"isPublic"`
}

type ModerateReviewInput struct {
	Status string `json:"status" validate:"required,oneof=approved rejected pending"`
}
