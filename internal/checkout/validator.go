// Package checkout validates the fulfillment choice made before an order is
// placed.
package checkout

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/nikolayk812/foodcart/internal/domain"
)

type Fulfillment string

const (
	DineIn   Fulfillment = "dineIn"
	Delivery Fulfillment = "delivery"
)

func ParseFulfillment(s string) (Fulfillment, error) {
	switch f := Fulfillment(s); f {
	case DineIn, Delivery:
		return f, nil
	default:
		return "", fmt.Errorf("fulfillment[%s] is not valid", s)
	}
}

func (f Fulfillment) String() string {
	switch f {
	case DineIn:
		return "Dine In"
	case Delivery:
		return "Delivery"
	default:
		return "None"
	}
}

type State int

const (
	NoneSelected State = iota
	DineInPending
	DeliveryPending
	Valid
)

func (s State) String() string {
	switch s {
	case NoneSelected:
		return "NONE_SELECTED"
	case DineInPending:
		return "DINE_IN_PENDING"
	case DeliveryPending:
		return "DELIVERY_PENDING"
	case Valid:
		return "VALID"
	default:
		return "UNKNOWN"
	}
}

// Field names reported by validation errors.
const (
	FieldFulfillment   = "fulfillment"
	FieldTableNumber   = "tableNumber"
	FieldStreetAddress = "streetAddress"
	FieldPostalCode    = "postalCode"
	FieldCity          = "city"
	FieldCountry       = "country"
)

type Address struct {
	StreetAddress string `yaml:"street_address"`
	PostalCode    string `yaml:"postal_code"`
	City          string `yaml:"city"`
	Country       string `yaml:"country"`
}

func (a Address) String() string {
	return strings.Join([]string{a.StreetAddress, a.PostalCode, a.City, a.Country}, ", ")
}

// Validator is the checkout form state for one editing session.
type Validator struct {
	fulfillment Fulfillment
	tableNumber string
	address     Address
	profile     *Address
	now         func() time.Time
}

type Option func(*Validator)

// WithProfile sets the saved address used to prefill delivery fields.
func WithProfile(a Address) Option {
	return func(v *Validator) { v.profile = &a }
}

func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Select picks the fulfillment option. Choosing delivery fills any empty
// address field from the saved profile.
func (v *Validator) Select(f Fulfillment) {
	v.fulfillment = f
	if f == Delivery && v.profile != nil {
		v.Prefill(*v.profile)
	}
}

func (v *Validator) Prefill(p Address) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&v.address.StreetAddress, p.StreetAddress)
	fill(&v.address.PostalCode, p.PostalCode)
	fill(&v.address.City, p.City)
	fill(&v.address.Country, p.Country)
}

func (v *Validator) SetTableNumber(s string) { v.tableNumber = s }
func (v *Validator) SetAddress(a Address) { v.address = a }
func (v *Validator) SetStreetAddress(s string) { v.address.StreetAddress = s }
func (v *Validator) SetPostalCode(s string) { v.address.PostalCode = s }
func (v *Validator) SetCity(s string) { v.address.City = s }
func (v *Validator) SetCountry(s string) { v.address.Country = s }

func (v *Validator) Fulfillment() Fulfillment { return v.fulfillment }
func (v *Validator) TableNumber() string { return v.tableNumber }
func (v *Validator) Address() Address { return v.address }

func (v *Validator) State() State {
	switch v.fulfillment {
	case DineIn:
		if v.firstMissing() == nil {
			return Valid
		}
		return DineInPending
	case Delivery:
		if v.firstMissing() == nil {
			return Valid
		}
		return DeliveryPending
	default:
		return NoneSelected
	}
}

// Validate reports the first field that keeps the form from being Valid.
func (v *Validator) Validate() error {
	if err := v.firstMissing(); err != nil {
		return err
	}
	return nil
}

// Checkout places the order for the given cart lines. It is only allowed in
// the Valid state.
func (v *Validator) Checkout(items []domain.LineItem, total domain.Money) (Order, error) {
	if err := v.Validate(); err != nil {
		return Order{}, err
	}

	order := Order{
		ID:          uuid.New(),
		Fulfillment: v.fulfillment,
		Items:       items,
		Total:       total,
		PlacedAt:    v.now().UTC(),
	}

	switch v.fulfillment {
	case DineIn:
		order.TableNumber = v.tableNumber
	case Delivery:
		addr := v.address
		order.Address = &addr
	}

	return order, nil
}

func (v *Validator) firstMissing() *domain.ValidationError {
	switch v.fulfillment {
	case DineIn:
		if v.tableNumber == "" {
			return &domain.ValidationError{Field: FieldTableNumber, Message: "please enter your table number"}
		}
		if !digitsOnly(v.tableNumber) {
			return &domain.ValidationError{Field: FieldTableNumber, Message: "table number must contain digits only"}
		}
		return nil
	case Delivery:
		fields := []struct {
			name  string
			value string
		}{
			{FieldStreetAddress, v.address.StreetAddress},
			{FieldPostalCode, v.address.PostalCode},
			{FieldCity, v.address.City},
			{FieldCountry, v.address.Country},
		}
		for _, f := range fields {
			if strings.TrimSpace(f.value) == "" {
				return &domain.ValidationError{Field: f.name, Message: "please enter your delivery address"}
			}
		}
		return nil
	default:
		return &domain.ValidationError{Field: FieldFulfillment, Message: "please select a pickup option"}
	}
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
