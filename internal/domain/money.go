package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// BaseCurrency is the unit every catalog price and internal total is stored in.
var BaseCurrency = currency.USD

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// ExchangeRates maps a currency to its multiplier against BaseCurrency.
type ExchangeRates map[currency.Unit]decimal.Decimal

func (r ExchangeRates) Rate(unit currency.Unit) (decimal.Decimal, error) {
	if unit == BaseCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, ok := r[unit]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate for %s: %w", unit, ErrUnsupportedCurrency)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate for %s is not positive: %s", unit, rate)
	}

	return rate, nil
}

// Convert converts a base currency amount into unit. It does not round.
func (r ExchangeRates) Convert(amount decimal.Decimal, unit currency.Unit) (Money, error) {
	rate, err := r.Rate(unit)
	if err != nil {
		return Money{}, err
	}

	return Money{Amount: Convert(amount, rate), Currency: unit}, nil
}

func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// Format renders amount for display. USD keeps at most two fraction digits and
// drops trailing zeros, KRW is rounded half-up to a whole number.
func Format(amount decimal.Decimal, unit currency.Unit) (string, error) {
	switch unit {
	case currency.USD:
		return "$" + group(amount.Round(2)), nil
	case currency.KRW:
		return group(amount.Round(0)) + "원", nil
	default:
		return "", fmt.Errorf("format %s: %w", unit, ErrUnsupportedCurrency)
	}
}

func (m Money) String() string {
	s, err := Format(m.Amount, m.Currency)
	if err != nil {
		return m.Amount.String() + " " + m.Currency.String()
	}
	return s
}

// group inserts thousands separators into the integer part of d. It works on
// the digit string, so amounts beyond int64 keep their digits and sign.
func group(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, frac, _ := strings.Cut(d.String(), ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if frac != "" {
		b.WriteString(".")
		b.WriteString(frac)
	}

	return b.String()
}
