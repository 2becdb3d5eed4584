package helper

import (
	"regexp"
	"testing"
	"time"

	"eventhub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tierFixtures() []model.TicketType {
	return []model.TicketType{
		{DTO: model.DTO{ID: 1}, Name: "VIP", Price: 2999, Quantity: 100, Sold: 95, MaxPerOrder: 4},
		{DTO: model.DTO{ID: 2}, Name: "General", Price: 499, Quantity: 500, Sold: 25, MaxPerOrder: 10},
	}
}

func TestPriceBookingLines(t *testing.T) {
	items, subtotal, err := PriceBookingLines(tierFixtures(), []model.BookingLineInput{
		{TicketTypeID: 1, Quantity: 2},
		{TicketTypeID: 2, Quantity: 3},
	})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "VIP", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 5998, items[0].Subtotal, 1e-9)
	assert.InDelta(t, 1497, items[1].Subtotal, 1e-9)
	assert.InDelta(t, 7495, subtotal, 1e-9)
}

func TestPriceBookingLinesUnknownTier(t *testing.T) {
	_, _, err := PriceBookingLines(tierFixtures(), []model.BookingLineInput{
		{TicketTypeID: 9, Quantity: 1},
	})

	require.Error(t, err)
	assert.Equal(t, "Ticket type 9 not found for this event", err.Error())
}

func TestPriceBookingLinesOversell(t *testing.T) {
	// 95 of 100 sold, asking for 6 more
	_, _, err := PriceBookingLines(tierFixtures(), []model.BookingLineInput{
		{TicketTypeID: 1, Quantity: 6},
	})

	require.Error(t, err)
	assert.Equal(t, "Not enough tickets available for VIP", err.Error())
}

func TestPriceBookingLinesMaxPerOrder(t *testing.T) {
	_, _, err := PriceBookingLines(tierFixtures(), []model.BookingLineInput{
		{TicketTypeID: 2, Quantity: 11},
	})

	require.Error(t, err)
	assert.Equal(t, "Maximum 10 tickets per order for General", err.Error())
}

func TestPriceBookingLinesAvailabilityCheckedFirst(t *testing.T) {
	// 6 tickets breaks both availability (5 left) and maxPerOrder (4);
	// the availability message wins
	_, _, err := PriceBookingLines(tierFixtures(), []model.BookingLineInput{
		{TicketTypeID: 1, Quantity: 6},
	})

	require.Error(t, err)
	assert.Equal(t, "Not enough tickets available for VIP", err.Error())
}

func TestPriceBookingLinesFirstFailureWins(t *testing.T) {
	_, _, err := PriceBookingLines(tierFixtures(), []model.BookingLineInput{
		{TicketTypeID: 2, Quantity: 11},
		{TicketTypeID: 9, Quantity: 1},
	})

	require.Error(t, err)
	assert.Equal(t, "Maximum 10 tickets per order for General", err.Error())
}

func TestPriceBookingLinesAggregatesDuplicateTierLines(t *testing.T) {
	tiers := []model.TicketType{
		{DTO: model.DTO{ID: 1}, Name: "General", Price: 499, Quantity: 100, Sold: 25, MaxPerOrder: 100},
	}

	// each line alone fits; together they exceed the 75 remaining tickets
	_, _, err := PriceBookingLines(tiers, []model.BookingLineInput{
		{TicketTypeID: 1, Quantity: 60},
		{TicketTypeID: 1, Quantity: 60},
	})

	require.Error(t, err)
	assert.Equal(t, "Not enough tickets available for General", err.Error())
}

func TestPriceBookingLinesAggregatesMaxPerOrder(t *testing.T) {
	_, _, err := PriceBookingLines(tierFixtures(), []model.BookingLineInput{
		{TicketTypeID: 2, Quantity: 6},
		{TicketTypeID: 2, Quantity: 6},
	})

	require.Error(t, err)
	assert.Equal(t, "Maximum 10 tickets per order for General", err.Error())
}

func TestComputeFees(t *testing.T) {
	// 2 tickets at 2999 each
	platformFee, processingFee, finalAmount := ComputeFees(5998)

	assert.InDelta(t, 179.94, platformFee, 1e-9)
	assert.InDelta(t, 2.5, processingFee, 1e-9)
	assert.InDelta(t, 6180.44, finalAmount, 1e-9)
}

func TestComputeFeesZeroSubtotal(t *testing.T) {
	platformFee, processingFee, finalAmount := ComputeFees(0)

	assert.Equal(t, 0.0, platformFee)
	assert.InDelta(t, 2.5, processingFee, 1e-9)
	assert.InDelta(t, 2.5, finalAmount, 1e-9)
}

func TestComputeFeesRoundsToTwoDecimals(t *testing.T) {
	// 3% of 333.33 is 9.9999
	platformFee, _, finalAmount := ComputeFees(333.33)

	assert.InDelta(t, 10.0, platformFee, 1e-9)
	assert.InDelta(t, 345.83, finalAmount, 1e-9)
}

func TestGenerateBookingNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^EVT-\d{14}-\d{4}$`)
	for i := 0; i < 10; i++ {
		assert.Regexp(t, pattern, GenerateBookingNumber())
	}
}

func TestGenerateTicketCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^TKT-\d{14}-\d{6}$`)
	for i := 0; i < 10; i++ {
		assert.Regexp(t, pattern, GenerateTicketCode())
	}
}

func TestCanCancelNow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		eventStart   time.Time
		isPrivileged bool
		want         bool
	}{
		{"attendee well before cutoff", now.Add(48 * time.Hour), false, true},
		{"attendee inside cutoff", now.Add(2 * time.Hour), false, false},
		{"attendee exactly at cutoff", now.Add(24 * time.Hour), false, false},
		{"attendee just outside cutoff", now.Add(24*time.Hour + time.Minute), false, true},
		{"organizer inside cutoff", now.Add(2 * time.Hour), true, true},
		{"organizer after event start", now.Add(-1 * time.Hour), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCancelNow(tt.eventStart, tt.isPrivileged, now))
		})
	}
}
