package helper

import (
	"eventhub/constants"
	"eventhub/database"
	"eventhub/model"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var (
	eventScheduler gocron.Scheduler
	expiryCron     *cron.Cron
)

// StartEventStatusScheduler runs the event completion sweep daily. The read
// path already applies the transition lazily; this bounds staleness for
// events nobody fetches after their end date.
func StartEventStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}
	eventScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(func() {
			log.Println("[CRON] event completion sweep triggered")
			CompleteEndedEvents(database.DB)
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Event status scheduler started (00:05)")
}

func StopEventStatusScheduler() {
	if eventScheduler != nil {
		_ = eventScheduler.Shutdown()
	}
}

// StartBookingExpiryScheduler fails payment orders and cancels bookings that
// sat pending for more than 30 minutes without a verified payment. Pending
// bookings never incremented sold counters, so there is nothing to roll back.
func StartBookingExpiryScheduler() {
	expiryCron = cron.New()
	_, err := expiryCron.AddFunc("@every 15m", ExpireStalePendingBookings)
	if err != nil {
		log.Fatal(err)
	}
	expiryCron.Start()
	log.Println("Booking expiry scheduler started (every 15m)")
}

func StopBookingExpiryScheduler() {
	if expiryCron != nil {
		expiryCron.Stop()
	}
}

func ExpireStalePendingBookings() {
	db := database.DB
	cutoff := time.Now().Add(-30 * time.Minute)

	var stale []model.Booking
	if err := db.Where("status = ? AND payment_status = ? AND created_at < ?",
		constants.BOOKING_PENDING, constants.PAYMENT_PENDING, cutoff).Find(&stale).Error; err != nil {
		log.Printf("failed to scan stale bookings: %v", err)
		return
	}

	for _, booking := range stale {
		if err := db.Model(&booking).Updates(map[string]interface{}{
			"status":         constants.BOOKING_CANCELLED,
			"payment_status": constants.PAYMENT_FAILED,
		}).Error; err != nil {
			log.Printf("failed to expire booking %s: %v", booking.BookingNumber, err)
			continue
		}
		if booking.PaymentOrderID != nil {
			db.Model(&model.PaymentOrder{}).
				Where("id = ? AND payment_status = ?", *booking.PaymentOrderID, constants.ORDER_PENDING).
				Update("payment_status", constants.ORDER_FAILED)
		}
	}

	if len(stale) > 0 {
		log.Printf("expired %d stale pending bookings", len(stale))
	}
}
