package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_NonNil(t *testing.T) {
	for name, err := range map[string]error{
		"ErrUnknownField":       ErrUnknownField,
		"ErrUnknownTopping":     ErrUnknownTopping,
		"ErrSubmitDisabled":     ErrSubmitDisabled,
		"ErrSubmissionInFlight": ErrSubmissionInFlight,
		"ErrFormNotFound":       ErrFormNotFound,
		"ErrGatewayUnavailable": ErrGatewayUnavailable,
	} {
		if err == nil {
			t.Fatalf("%s must not be nil", name)
		}
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrSubmitDisabled, ErrSubmissionInFlight) {
		t.Fatal("ErrSubmitDisabled must not match ErrSubmissionInFlight")
	}
	if errors.Is(ErrUnknownField, ErrUnknownTopping) {
		t.Fatal("ErrUnknownField must not match ErrUnknownTopping")
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", ErrSubmissionInFlight)
	if !errors.Is(wrapped, ErrSubmissionInFlight) {
		t.Fatal("errors.Is must match wrapped ErrSubmissionInFlight")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrUnknownTopping, errors.New("id 9"))
	if !errors.Is(wrapped2, ErrUnknownTopping) {
		t.Fatal("errors.Is must match double-wrapped ErrUnknownTopping")
	}
}
