// Package model defines the core domain entities for the food storage service.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the ISO calendar date layout used on the wire and in renderings.
	DateLayout = "2006-01-02"
	// InputDateLayout is the day-first layout typed at the console.
	InputDateLayout = "02-01-2006"
)

// Clock returns the current instant. Only its calendar date is used.
type Clock func() time.Time

// Today returns the calendar date of clock, defaulting to time.Now.
func Today(clock Clock) time.Time {
	if clock == nil {
		clock = time.Now
	}
	return DateOf(clock())
}

// DateOf truncates t to its calendar date, expressed as midnight UTC.
// The date is taken in t's own location before normalising.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Ingredient is a stored lot of an ingredient, or a requirement line of a recipe.
//
// Price is the price of the whole lot, not a unit price: merging two lots sums
// their prices and consuming part of a lot scales its price by the fraction left.
type Ingredient struct {
	name           string
	amount         float64
	unit           string
	price          decimal.Decimal
	expirationDate time.Time
}

// NewIngredient validates and creates an ingredient lot.
// The expiration date may not be before today.
func NewIngredient(name string, amount float64, unit string, price decimal.Decimal, expirationDate, today time.Time) (*Ingredient, error) {
	if err := validateText(name, "Name"); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateText(unit, "Unit"); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	expires := DateOf(expirationDate)
	if err := validateExpirationDate(expires, today); err != nil {
		return nil, err
	}

	return &Ingredient{
		name:           name,
		amount:         amount,
		unit:           unit,
		price:          price,
		expirationDate: expires,
	}, nil
}

// NewRequirement creates a recipe requirement line. Requirement lines carry
// no price and expire a year after today; they never enter the inventory.
func NewRequirement(name string, amount float64, unit string, today time.Time) (*Ingredient, error) {
	today = DateOf(today)
	return NewIngredient(name, amount, unit, decimal.Zero, today.AddDate(1, 0, 0), today)
}

// Name returns the ingredient name with its original casing.
func (i *Ingredient) Name() string { return i.name }

// Key returns the case-insensitive lookup key for the name.
func (i *Ingredient) Key() string { return NormalizeKey(i.name) }

// Amount returns the quantity held, in Unit.
func (i *Ingredient) Amount() float64 { return i.amount }

// Unit returns the unit of measurement.
func (i *Ingredient) Unit() string { return i.unit }

// Price returns the price of the whole lot.
func (i *Ingredient) Price() decimal.Decimal { return i.price }

// ExpirationDate returns the calendar date the lot expires on.
func (i *Ingredient) ExpirationDate() time.Time { return i.expirationDate }

// SetAmount replaces the amount. Negative amounts are rejected.
func (i *Ingredient) SetAmount(amount float64) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	i.amount = amount
	return nil
}

// SetUnit replaces the unit. Blank units are rejected.
func (i *Ingredient) SetUnit(unit string) error {
	if err := validateText(unit, "Unit"); err != nil {
		return err
	}
	i.unit = unit
	return nil
}

// SetPrice replaces the lot price. Negative prices are rejected.
func (i *Ingredient) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	i.price = price
	return nil
}

// SetExpirationDate replaces the expiration date. Dates before today are rejected.
func (i *Ingredient) SetExpirationDate(date, today time.Time) error {
	date = DateOf(date)
	if err := validateExpirationDate(date, today); err != nil {
		return err
	}
	i.expirationDate = date
	return nil
}

// IsExpired reports whether today is after the expiration date.
// A lot expiring today is still usable.
func (i *Ingredient) IsExpired(today time.Time) bool {
	return DateOf(today).After(i.expirationDate)
}

// SameLot reports whether other identifies the same lot: equal name
// (case-insensitive), unit and expiration date. Amount and price are ignored.
func (i *Ingredient) SameLot(other *Ingredient) bool {
	if other == nil {
		return false
	}
	return strings.EqualFold(i.name, other.name) &&
		i.unit == other.unit &&
		i.expirationDate.Equal(other.expirationDate)
}

// Clone returns an independent copy.
func (i *Ingredient) Clone() *Ingredient {
	c := *i
	return &c
}

// String returns a one-line rendering.
func (i *Ingredient) String() string {
	return fmt.Sprintf("Ingredient{name='%s', amount=%.2f %s, price=%s, expirationDate=%s}",
		i.name, i.amount, i.unit, i.price.StringFixed(2), i.expirationDate.Format(DateLayout))
}

// PrettyPrint returns a multi-line rendering for display.
func (i *Ingredient) PrettyPrint() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", i.name)
	fmt.Fprintf(&sb, "Amount: %.2f %s\n", i.amount, i.unit)
	fmt.Fprintf(&sb, "Price: %s\n", i.price.StringFixed(2))
	fmt.Fprintf(&sb, "Expiration date: %s", i.expirationDate.Format(DateLayout))
	return sb.String()
}

// NormalizeKey returns the map key used for case-insensitive names.
func NormalizeKey(name string) string {
	return strings.ToLower(name)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validateText(value, field string) error {
	if IsBlank(value) {
		return InvalidInput("%s cannot be blank", field)
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return InvalidInput("Amount must be a finite number")
	}
	if amount < 0 {
		return InvalidInput("Amount cannot be negative")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return InvalidInput("Price cannot be negative")
	}
	return nil
}

func validateExpirationDate(date, today time.Time) error {
	if date.IsZero() {
		return InvalidInput("Expiration date is required")
	}
	if date.Before(DateOf(today)) {
		return InvalidInput("Expiration date cannot be in the past")
	}
	return nil
}
