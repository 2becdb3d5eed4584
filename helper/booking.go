package helper

import (
	"errors"
	"eventhub/constants"
	"eventhub/model"
	"eventhub/utils"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New(constants.EVENT_NOT_FOUND)
	ErrEventNotPublished = errors.New(constants.EVENT_NOT_PUBLISHED)
)

// GenerateBookingNumber builds a human-legible booking reference
// (timestamp + random suffix, unique by convention).
func GenerateBookingNumber() string {
	return fmt.Sprintf("EVT-%s-%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
}

// GenerateTicketCode builds a per-attendee ticket code in the same convention.
func GenerateTicketCode() string {
	return fmt.Sprintf("TKT-%s-%06d", time.Now().Format("20060102150405"), rand.Intn(1000000))
}

// ComputeFees applies the platform pricing to a subtotal:
// 3% platform fee plus a fixed processing fee.
func ComputeFees(subtotal float64) (platformFee, processingFee, finalAmount float64) {
	platformFee = utils.Round2(subtotal * constants.PLATFORM_FEE_RATE)
	processingFee = constants.PROCESSING_FEE
	finalAmount = utils.Round2(subtotal + platformFee + processingFee)
	return platformFee, processingFee, finalAmount
}

// ValidateBookingLines checks the requested tiers against the event's catalog
// and prices the order. The availability check here is only a read: it is not
// atomic with the later sold-counter increments.
func ValidateBookingLines(db *gorm.DB, eventID uint, lines []model.BookingLineInput) (*model.Event, []model.BookingItem, float64, error) {
	var event model.Event
	if err := db.Preload("TicketTypes").First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, ErrEventNotFound
		}
		return nil, nil, 0, err
	}
	if event.Status != constants.EVENT_PUBLISHED {
		return nil, nil, 0, ErrEventNotPublished
	}

	items, subtotal, err := PriceBookingLines(event.TicketTypes, lines)
	if err != nil {
		return nil, nil, 0, err
	}
	return &event, items, subtotal, nil
}

// PriceBookingLines checks the requested lines against the event's tiers and
// prices the order. First failure wins; error messages are user-facing.
// Quantities for the same tier accumulate across lines so a request split
// over duplicate lines cannot pass the availability check twice.
func PriceBookingLines(tiers []model.TicketType, lines []model.BookingLineInput) ([]model.BookingItem, float64, error) {
	tiersByID := make(map[uint]*model.TicketType, len(tiers))
	for i := range tiers {
		tiersByID[tiers[i].ID] = &tiers[i]
	}

	requested := make(map[uint]int, len(lines))
	items := make([]model.BookingItem, 0, len(lines))
	subtotal := 0.0
	for _, line := range lines {
		tier, ok := tiersByID[line.TicketTypeID]
		if !ok {
			return nil, 0, fmt.Errorf("Ticket type %d not found for this event", line.TicketTypeID)
		}
		requested[tier.ID] += line.Quantity
		if tier.Sold+requested[tier.ID] > tier.Quantity {
			return nil, 0, fmt.Errorf("Not enough tickets available for %s", tier.Name)
		}
		if requested[tier.ID] > tier.MaxPerOrder {
			return nil, 0, fmt.Errorf("Maximum %d tickets per order for %s", tier.MaxPerOrder, tier.Name)
		}

		lineSubtotal := utils.Round2(tier.Price * float64(line.Quantity))
		subtotal += lineSubtotal
		items = append(items, model.BookingItem{
			TicketTypeID: tier.ID,
			Name:         tier.Name,
			Price:        tier.Price,
			Quantity:     line.Quantity,
			Subtotal:     lineSubtotal,
		})
	}

	return items, utils.Round2(subtotal), nil
}

// AdjustSoldCounters applies delta*quantity to each line item's tier as N
// independent updates. Deliberately not wrapped in a transaction with the
// booking write: a crash in between leaves booking and counters inconsistent.
func AdjustSoldCounters(db *gorm.DB, items []model.BookingItem, delta int) {
	for _, item := range items {
		if err := db.Model(&model.TicketType{}).
			Where("id = ?", item.TicketTypeID).
			Update("sold", gorm.Expr("sold + ?", delta*item.Quantity)).Error; err != nil {
			log.Printf("failed to adjust sold counter for tier %d: %v", item.TicketTypeID, err)
		}
	}
}

// CanCancelNow enforces the attendee-facing cancellation cutoff. Organizers
// and admins override the window.
func CanCancelNow(eventStart time.Time, isPrivileged bool, now time.Time) bool {
	if isPrivileged {
		return true
	}
	return now.Add(constants.CANCEL_CUTOFF_HRS * time.Hour).Before(eventStart)
}
