package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hemera/pkg/usecase"
)

func TestErrors_SentinelErrors(t *testing.T) {
	// Test that sentinel errors are not nil
	tests := []struct {
		name string
		err  error
	}{
		{"ErrPasswordLoginDisabled", usecase.ErrPasswordLoginDisabled},
		{"ErrInvalidPassword", usecase.ErrInvalidPassword},
		{"ErrOAuthNotConfigured", usecase.ErrOAuthNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.err).NotNil()
		})
	}
}

func TestErrors_ErrorsAreDistinct(t *testing.T) {
	// Test that sentinel errors are distinct
	gt.Bool(t, errors.Is(usecase.ErrPasswordLoginDisabled, usecase.ErrInvalidPassword)).False()
	gt.Bool(t, errors.Is(usecase.ErrInvalidPassword, usecase.ErrOAuthNotConfigured)).False()
}
