package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "validation error",
			err:  NewValidationError(EntityProduct, OpSave, ErrProductTitleRequired),
			want: true,
		},
		{
			name: "wrapped validation error",
			err:  fmt.Errorf("controller: %w", NewValidationError(EntityCustomer, OpUpdate, ErrCustomerNameRequired)),
			want: true,
		},
		{
			name: "not found error",
			err:  NewNotFoundError(EntityProduct, 1),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidation(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "not found error",
			err:  NewNotFoundError(EntityCustomer, 7),
			want: true,
		},
		{
			name: "joined not found error",
			err:  errors.Join(NewNotFoundError(EntityProduct, 3), errors.New("extra context")),
			want: true,
		},
		{
			name: "validation error",
			err:  NewValidationError(EntityProduct, OpSave, ErrProductPriceNegative),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestValidationError_UnwrapsReason(t *testing.T) {
	err := NewValidationError(EntityProduct, OpUpdate, ErrProductPriceNegative)

	require.ErrorIs(t, err, ErrProductPriceNegative)
	assert.Equal(t, "product update: product price must not be negative", err.Error())

	var vErr *ValidationError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &vErr)
	assert.Equal(t, OpUpdate, vErr.Op)
}

func TestNotFoundError_CarriesID(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NewNotFoundError(EntityCustomer, 42))

	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, int64(42), nfErr.ID)
	assert.Equal(t, EntityCustomer, nfErr.Entity)
	assert.Contains(t, err.Error(), "customer with id 42 not found")
}
