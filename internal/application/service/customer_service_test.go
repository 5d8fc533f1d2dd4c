package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpos/marketpos-api/internal/domain/enum"
)

// TestCreateCustomer verifies defaults and cent conversion of the credit
// limit.
func TestCreateCustomer(t *testing.T) {
	t.Parallel()

	svc := NewCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name:        "Ayşe Yılmaz",
		CreditLimit: 250.00,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.CustomerTypeIndividual, customer.Type)
	assert.Equal(t, int64(25000), customer.CreditLimit)
	assert.NotEmpty(t, customer.Code)
	assert.True(t, customer.Active)
}

// TestUpdateCustomer verifies only provided fields change.
func TestUpdateCustomer(t *testing.T) {
	t.Parallel()

	svc := NewCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	phone := "+905551112233"
	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name:  "Mehmet Demir",
		Phone: &phone,
	})
	require.NoError(t, err)

	newLimit := 100.0
	updated, err := svc.UpdateCustomer(ctx, customer.ID, &UpdateCustomerInput{
		CreditLimit: &newLimit,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), updated.CreditLimit)
	assert.Equal(t, "Mehmet Demir", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
}

// TestGetCustomerNotFound verifies an unknown ID maps to a not-found error.
func TestGetCustomerNotFound(t *testing.T) {
	t.Parallel()

	svc := NewCustomerService(newFakeCustomerRepo())

	_, err := svc.GetCustomer(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
