package services

import "errors"

// Domain errors surfaced by the engines. Guard rejections are non-fatal:
// callers decide how to report them.
var (
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrInvalidRefundAmount  = errors.New("refund amount must be positive and within the remaining balance")
	ErrRefundNotAllowed     = errors.New("payment is not in a refundable status")
	ErrGatewayMismatch      = errors.New("webhook provider does not match the payment method")
	ErrPayoutNotProcessable = errors.New("payout is not in a processable status")
)
