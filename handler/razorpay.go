package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"eventhub/config"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Razorpay wraps the gateway's order API and signature scheme.
type Razorpay struct {
	KeyID     string
	KeySecret string
	client    *razorpay.Client
}

func NewRazorpay() *Razorpay {
	keyID := config.Config("RAZORPAY_KEY_ID")
	keySecret := config.Config("RAZORPAY_KEY_SECRET")
	return &Razorpay{
		KeyID:     keyID,
		KeySecret: keySecret,
		client:    razorpay.NewClient(keyID, keySecret),
	}
}

// CreateOrder registers an order with the gateway. Amount is in minor units
// (paise).
func (r *Razorpay) CreateOrder(amountPaise int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	order, err := r.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order create: missing order id in response")
	}
	return orderID, nil
}

// VerifySignature checks the checkout callback signature.
func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(r.KeySecret, orderID, paymentID, signature)
}

// VerifyPaymentSignature recomputes HMAC-SHA256(secret, orderId+"|"+paymentId)
// and compares it to the supplied hex signature in constant time.
func VerifyPaymentSignature(secret, orderID, paymentID, signature string) bool {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
