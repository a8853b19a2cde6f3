package domain

import "errors"

// Sentinel errors for the order domain. Use errors.Is() to check these.
var (
	// ErrUnknownField indicates a change event named a field the form does not have.
	ErrUnknownField = errors.New("unknown form field")

	// ErrUnknownTopping indicates a topping id outside the menu catalog.
	ErrUnknownTopping = errors.New("unknown topping")

	// ErrSubmitDisabled indicates a submit attempt while the draft fails validation.
	ErrSubmitDisabled = errors.New("submit disabled: order draft is invalid")

	// ErrSubmissionInFlight indicates a submit attempt while another one is pending.
	ErrSubmissionInFlight = errors.New("order submission already in flight")

	// ErrFormNotFound indicates the form session has no controller.
	ErrFormNotFound = errors.New("order form not found")

	// ErrGatewayUnavailable indicates the order endpoint could not be reached.
	ErrGatewayUnavailable = errors.New("order gateway unavailable")
)

// DefaultFailureMessage is shown when a failed submission carries no usable message.
const DefaultFailureMessage = "order could not be submitted"
