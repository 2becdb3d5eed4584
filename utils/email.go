package utils

import (
	"eventhub/config"
	"fmt"
	"log"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// BookingEmailData feeds the booking lifecycle mails.
type BookingEmailData struct {
	Name          string
	BookingNumber string
	EventTitle    string
	EventDate     string
	Amount        float64
	Reason        string
}

// SendBookingEmail sends an HTML lifecycle mail asynchronously. Failures are
// logged and swallowed: mail is a side channel, never part of the request
// outcome.
func SendBookingEmail(to, subject, htmlBody string) {
	go func() {
		host := config.Config("SMTP_HOST")
		port, _ := strconv.Atoi(config.ConfigDefault("SMTP_PORT", "587"))
		username := config.Config("SMTP_USERNAME")
		password := config.Config("SMTP_PASSWORD")
		from := config.ConfigDefault("SMTP_FROM", username)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", htmlBody)

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send email %q to %s: %v", subject, to, err)
		}
	}()
}

func BookingCancelledBody(data BookingEmailData) string {
	return fmt.Sprintf(
		`<h2>Booking cancelled</h2>
		<p>Hi %s,</p>
		<p>Your booking <b>%s</b> for <b>%s</b> (%s) has been cancelled.</p>
		<p>Refund amount: %.2f</p>
		<p>Reason: %s</p>`,
		data.Name, data.BookingNumber, data.EventTitle, data.EventDate, data.Amount, data.Reason)
}

func BookingConfirmedBody(data BookingEmailData) string {
	return fmt.Sprintf(
		`<h2>Booking confirmed</h2>
		<p>Hi %s,</p>
		<p>Your booking <b>%s</b> for <b>%s</b> (%s) is confirmed.</p>
		<p>Amount paid: %.2f</p>`,
		data.Name, data.BookingNumber, data.EventTitle, data.EventDate, data.Amount)
}

func CancellationRequestedBody(data BookingEmailData) string {
	return fmt.Sprintf(
		`<h2>Cancellation requested</h2>
		<p>An attendee has requested to cancel booking <b>%s</b> for <b>%s</b>.</p>
		<p>Reason: %s</p>
		<p>Please approve or reject the request from your organizer dashboard.</p>`,
		data.BookingNumber, data.EventTitle, data.Reason)
}

func CancellationRejectedBody(data BookingEmailData) string {
	return fmt.Sprintf(
		`<h2>Cancellation request rejected</h2>
		<p>Hi %s,</p>
		<p>The organizer rejected your cancellation request for booking <b>%s</b> (%s).</p>
		<p>Reason: %s</p>
		<p>Your booking remains confirmed.</p>`,
		data.Name, data.BookingNumber, data.EventTitle, data.Reason)
}

// SendPlainEmail sends a plain-text mail synchronously over SMTP. Used for
// OTP and password-reset flows where the caller wants the send error.
func SendPlainEmail(to, subject, body string) error {
	host := config.Config("SMTP_HOST")
	port := config.ConfigDefault("SMTP_PORT", "587")
	username := config.Config("SMTP_USERNAME")
	password := config.Config("SMTP_PASSWORD")
	from := config.ConfigDefault("SMTP_FROM", username)

	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	return e.Send(host+":"+port, smtp.PlainAuth("", username, password, host))
}
