package handler

import (
	"testing"

	"eventhub/constants"
	"eventhub/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSettleGuardRejectsAlreadyPaidOrder(t *testing.T) {
	order := &model.PaymentOrder{UserID: 7, PaymentStatus: constants.ORDER_PAID}

	status, msg := settleGuard(order, 7)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Payment already verified", msg)
}

func TestSettleGuardChecksReplayBeforeOwnership(t *testing.T) {
	// a paid order is rejected as already verified even for a foreign caller
	order := &model.PaymentOrder{UserID: 7, PaymentStatus: constants.ORDER_PAID}

	status, msg := settleGuard(order, 8)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, constants.PAYMENT_ALREADY_VERIFIED, msg)
}

func TestSettleGuardRejectsForeignOrder(t *testing.T) {
	order := &model.PaymentOrder{UserID: 7, PaymentStatus: constants.ORDER_PENDING}

	status, msg := settleGuard(order, 8)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "This payment order belongs to another user", msg)
}

func TestSettleGuardAllowsPendingOwnOrder(t *testing.T) {
	order := &model.PaymentOrder{UserID: 7, PaymentStatus: constants.ORDER_PENDING}

	status, msg := settleGuard(order, 7)
	assert.Equal(t, 0, status)
	assert.Empty(t, msg)
}
