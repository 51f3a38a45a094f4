// Package money formats ledger amounts for display.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[currency.Unit]string{
	currency.USD: "$",
	currency.EUR: "€",
	currency.GBP: "£",
	currency.JPY: "¥",
	currency.CAD: "CA$",
	currency.AUD: "A$",
}

// Formatter renders amounts in one currency using a locale's digit grouping.
type Formatter struct {
	unit    currency.Unit
	scale   int
	printer *message.Printer
}

// NewFormatter returns a Formatter for the ISO 4217 currency code.
func NewFormatter(code string, tag language.Tag) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("unknown currency %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return &Formatter{
		unit:    unit,
		scale:   scale,
		printer: message.NewPrinter(tag),
	}, nil
}

// MustFormatter is NewFormatter for codes known to be valid.
func MustFormatter(code string) *Formatter {
	f, err := NewFormatter(code, language.AmericanEnglish)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO code of the formatter's currency.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders amount with the currency symbol, e.g. "$1,234.50" or "-$3.00".
func (f *Formatter) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.Round(int32(f.scale)).IsNegative() {
		sign = "-"
	}
	value, _ := amount.Abs().Round(int32(f.scale)).Float64()
	digits := f.printer.Sprintf(fmt.Sprintf("%%.%df", f.scale), value)
	return sign + f.symbol() + digits
}

func (f *Formatter) symbol() string {
	if s, ok := symbols[f.unit]; ok {
		return s
	}
	return f.unit.String() + " "
}

// Describe turns an outstanding balance into the headline shown to a roommate.
func (f *Formatter) Describe(outstanding decimal.Decimal) string {
	rounded := outstanding.Round(int32(f.scale))
	switch {
	case rounded.IsPositive():
		return "You Owe " + f.Format(rounded)
	case rounded.IsNegative():
		return "You're Owed " + f.Format(rounded.Neg())
	default:
		return "All settled up"
	}
}

// DescribeFor is Describe in the third person, for household overviews.
func (f *Formatter) DescribeFor(name string, outstanding decimal.Decimal) string {
	rounded := outstanding.Round(int32(f.scale))
	switch {
	case rounded.IsPositive():
		return name + " owes " + f.Format(rounded)
	case rounded.IsNegative():
		return name + " is owed " + f.Format(rounded.Neg())
	default:
		return name + " is settled up"
	}
}

// Round rounds amount to the currency's standard fraction digits.
func (f *Formatter) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(int32(f.scale))
}
