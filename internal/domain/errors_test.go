package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsValidation(t *testing.T) {
	validationErrs := []error{
		ErrOrderNumberRequired,
		ErrTotalValueRequired,
		ErrCreationDateRequired,
		ErrItemsRequired,
		ErrProductIDInvalid,
		ErrCreationDateInvalid,
	}
	for _, err := range validationErrs {
		if !IsValidation(err) {
			t.Fatalf("expected %v to be a validation error", err)
		}
	}

	otherErrs := []error{
		ErrOrderNotFound,
		ErrDuplicateOrder,
		ErrInvalidCredentials,
		ErrUserNotFound,
		ErrOutboxPublish,
		errors.New("something else"),
		nil,
	}
	for _, err := range otherErrs {
		if IsValidation(err) {
			t.Fatalf("expected %v to not be a validation error", err)
		}
	}
}

// Обёртки выше по стеку не теряют класс ошибки.
func TestIsValidation_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("create order: %w", ErrItemsRequired)

	if !IsValidation(wrapped) {
		t.Fatal("expected wrapped validation error to be detected")
	}
	if !errors.Is(wrapped, ErrItemsRequired) {
		t.Fatal("expected wrapped error to match its sentinel")
	}
}
