package checkout_test

import (
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/foodcart/internal/checkout"
	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestValidator_DineIn(t *testing.T) {
	tests := []struct {
		name      string
		table     string
		wantState checkout.State
		wantField string
	}{
		{
			name:      "table 42: ok",
			table:     "42",
			wantState: checkout.Valid,
		},
		{
			name:      "empty table: error",
			table:     "",
			wantState: checkout.DineInPending,
			wantField: checkout.FieldTableNumber,
		},
		{
			name:      "non-numeric table: error",
			table:     "4a",
			wantState: checkout.DineInPending,
			wantField: checkout.FieldTableNumber,
		},
		{
			name:      "non-ascii digits: error",
			table:     "٤٢",
			wantState: checkout.DineInPending,
			wantField: checkout.FieldTableNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := checkout.NewValidator()
			v.Select(checkout.DineIn)
			v.SetTableNumber(tt.table)

			assert.Equal(t, tt.wantState, v.State())

			order, err := v.Checkout(nil, usd("0"))
			if tt.wantField != "" {
				assertValidationField(t, err, tt.wantField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.table, order.TableNumber)
			assert.Nil(t, order.Address)
		})
	}
}

func TestValidator_Delivery(t *testing.T) {
	full := checkout.Address{
		StreetAddress: gofakeit.Street(),
		PostalCode:    gofakeit.Zip(),
		City:          gofakeit.City(),
		Country:       gofakeit.Country(),
	}

	tests := []struct {
		name      string
		address   func(a checkout.Address) checkout.Address
		wantField string
	}{
		{
			name:    "all fields set: ok",
			address: func(a checkout.Address) checkout.Address { return a },
		},
		{
			name:      "missing street: error",
			address:   func(a checkout.Address) checkout.Address { a.StreetAddress = ""; return a },
			wantField: checkout.FieldStreetAddress,
		},
		{
			name:      "missing postal code: error",
			address:   func(a checkout.Address) checkout.Address { a.PostalCode = ""; return a },
			wantField: checkout.FieldPostalCode,
		},
		{
			name:      "missing city: error",
			address:   func(a checkout.Address) checkout.Address { a.City = ""; return a },
			wantField: checkout.FieldCity,
		},
		{
			name:      "missing country: error",
			address:   func(a checkout.Address) checkout.Address { a.Country = " "; return a },
			wantField: checkout.FieldCountry,
		},
		{
			name: "missing city and country reports city first: error",
			address: func(a checkout.Address) checkout.Address {
				a.City, a.Country = "", ""
				return a
			},
			wantField: checkout.FieldCity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := checkout.NewValidator()
			v.Select(checkout.Delivery)
			v.SetAddress(tt.address(full))

			order, err := v.Checkout(nil, usd("1.00"))
			if tt.wantField != "" {
				assert.Equal(t, checkout.DeliveryPending, v.State())
				assertValidationField(t, err, tt.wantField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, checkout.Valid, v.State())
			require.NotNil(t, order.Address)
			assert.Equal(t, full, *order.Address)
		})
	}
}

func TestValidator_NoneSelected(t *testing.T) {
	v := checkout.NewValidator()
	assert.Equal(t, checkout.NoneSelected, v.State())

	_, err := v.Checkout(nil, usd("0"))
	assertValidationField(t, err, checkout.FieldFulfillment)
}

func TestValidator_SwitchingOption(t *testing.T) {
	v := checkout.NewValidator()
	v.Select(checkout.DineIn)
	v.SetTableNumber("7")
	require.Equal(t, checkout.Valid, v.State())

	v.Select(checkout.Delivery)
	assert.Equal(t, checkout.DeliveryPending, v.State())

	v.Select(checkout.DineIn)
	assert.Equal(t, checkout.Valid, v.State())
}

func TestValidator_ProfilePrefill(t *testing.T) {
	profile := checkout.Address{
		StreetAddress: "123 Main St",
		PostalCode:    "12345",
		City:          "Anytown",
		Country:       "USA",
	}

	v := checkout.NewValidator(checkout.WithProfile(profile))
	v.SetCity("Springfield")
	v.Select(checkout.Delivery)

	assert.Equal(t, checkout.Valid, v.State())
	assert.Equal(t, "Springfield", v.Address().City, "typed fields win over the profile")
	assert.Equal(t, "123 Main St", v.Address().StreetAddress)
}

func TestOrder_Summary(t *testing.T) {
	placed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	items := []domain.LineItem{{ID: 1, TotalPrice: decimal.RequireFromString("12.99")}}

	v := checkout.NewValidator(checkout.WithClock(func() time.Time { return placed }))
	v.Select(checkout.DineIn)
	v.SetTableNumber("42")

	order, err := v.Checkout(items, usd("12.99"))
	require.NoError(t, err)
	assert.Equal(t, "Order placed! Pickup option: Dine In, Table number: 42", order.Summary())
	assert.Equal(t, placed, order.PlacedAt)
	assert.Equal(t, items, order.Items)
	assert.NotEmpty(t, order.ID.String())

	v = checkout.NewValidator()
	v.Select(checkout.Delivery)
	v.SetAddress(checkout.Address{StreetAddress: "1 Elm", PostalCode: "999", City: "Oslo", Country: "Norway"})

	order, err = v.Checkout(items, usd("12.99"))
	require.NoError(t, err)
	assert.Equal(t, "Order placed! Pickup option: Delivery, Address: 1 Elm, 999, Oslo, Norway", order.Summary())
}

func TestParseFulfillment(t *testing.T) {
	f, err := checkout.ParseFulfillment("delivery")
	require.NoError(t, err)
	assert.Equal(t, checkout.Delivery, f)

	_, err = checkout.ParseFulfillment("takeaway")
	require.EqualError(t, err, "fulfillment[takeaway] is not valid")
}

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()

	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, field, verr.Field)
}

func usd(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.USD}
}
