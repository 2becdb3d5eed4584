package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "test_key_secret"
	orderID := "order_MkW1zABCdef123"
	paymentID := "pay_MkW2aXYZghi456"

	sig := signPayload(secret, orderID, paymentID)
	assert.True(t, VerifyPaymentSignature(secret, orderID, paymentID, sig))
}

func TestVerifyPaymentSignatureRejectsTampering(t *testing.T) {
	secret := "test_key_secret"
	orderID := "order_MkW1zABCdef123"
	paymentID := "pay_MkW2aXYZghi456"
	sig := signPayload(secret, orderID, paymentID)

	assert.False(t, VerifyPaymentSignature(secret, orderID, "pay_other", sig))
	assert.False(t, VerifyPaymentSignature(secret, "order_other", paymentID, sig))
	assert.False(t, VerifyPaymentSignature("wrong_secret", orderID, paymentID, sig))
	assert.False(t, VerifyPaymentSignature(secret, orderID, paymentID, ""))
	assert.False(t, VerifyPaymentSignature(secret, orderID, paymentID, "deadbeef"))
}

func TestVerifySignatureUsesClientSecret(t *testing.T) {
	r := &Razorpay{KeyID: "rzp_test_key", KeySecret: "shhh"}
	sig := signPayload("shhh", "order_1", "pay_1")

	assert.True(t, r.VerifySignature("order_1", "pay_1", sig))
	assert.False(t, r.VerifySignature("order_1", "pay_2", sig))
}
