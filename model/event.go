package model

import "time"

type Event struct {
	DTO
	OrganizerID   uint         `json:"organizerId"`
	Organizer     *User        `json:"organizer,omitempty"`
	Title         string       `gorm:"size:200" json:"title"`
	Slug          string       `gorm:"unique;size:220" json:"slug"`
	Description   string       `json:"description"`
	Category      string       `gorm:"size:60;index" json:"category"`
	VenueName     string       `json:"venueName"`
	VenueAddress  string       `json:"venueAddress"`
	VenueCity     string       `gorm:"size:100;index" json:"venueCity"`
	StartDate     time.Time    `json:"startDate"`
	EndDate       time.Time    `gorm:"index" json:"endDate"`
	Status        string       `gorm:"size:20;default:draft;index" json:"status"` // draft, published, cancelled, completed
	ImageURL      string       `json:"imageUrl"`
	TicketTypes   []TicketType `gorm:"foreignKey:EventID" json:"ticketTypes"`
	AverageRating float64      `json:"averageRating"` // 1 decimal, recomputed from approved public reviews
	TotalReviews  int64        `json:"totalReviews"`
}

type TicketType struct {
	DTO
	EventID     uint       `gorm:"index" json:"eventId"`
	Name        string     `gorm:"size:100" json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Sold        int        `gorm:"default:0" json:"sold"`
	MaxPerOrder int        `gorm:"default:10" json:"maxPerOrder"`
	SaleStart   *time.Time `json:"saleStart,omitempty"`
	SaleEnd     *time.Time `json:"saleEnd,omitempty"`
}

type TicketTypeInput struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description"`
	Price       float64    `json:"price" validate:"gte=0"`
	Quantity    int        `json:"quantity" validate:"required,gt=0"`
	MaxPerOrder int        `json:"maxPerOrder" validate:"omitempty,gt=0"`
	SaleStart   *time.Time `json:"saleStart"`
	SaleEnd     *time.Time `json:"saleEnd"`
}

type CreateEventInput struct {
	Title        string            `json:"title" validate:"required,min=3,max=200"`
	Description  string            `json:"description" validate:"required"`
	Category     string            `json:"category" validate:"required,max=60"`
	VenueName    string            `json:"venueName" validate:"required"`
	VenueAddress string            `json:"venueAddress"`
	VenueCity    string            `json:"venueCity" validate:"required"`
	StartDate    time.Time         `json:"startDate" validate:"required"`
	EndDate      time.Time         `json:"endDate" validate:"required"`
	Status       string            `json:"status" validate:"omitempty,oneof=draft published"`
	ImageURL     string            `json:"imageUrl"`
	TicketTypes  []TicketTypeInput `json:"ticketTypes" validate:"required,min=1,dive"`
}

type UpdateEventInput struct {
	Title        *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category" validate:"omitempty,max=60"`
	VenueName    *string    `json:"venueName"`
	VenueAddress *string    `json:"venueAddress"`
	VenueCity    *string    `json:"venueCity"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Status       *string    `json:"status" validate:"omitempty,oneof=draft published cancelled"`
	ImageURL     *string    `json:"imageUrl"`
}
