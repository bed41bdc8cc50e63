package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	if m.String() != "12.35" { // rounded for display
		t.Fatalf("NewMoney display mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}

	m3, err := NewMoneyFromString("123.45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m3.String() != "123.45" {
		t.Fatalf("NewMoneyFromString display mismatch: got %s", m3.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}

	if got := NewMoneyFromInt(7).String(); got != "7.00" {
		t.Fatalf("NewMoneyFromInt got %s", got)
	}
}

func TestNewMoneyFromStringAcceptsFormattedInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"€10,000", "10000.00"},
		{" 1,234.56 ", "1234.56"},
		{"€ 99.9", "99.90"},
	}
	for _, c := range cases {
		m, err := NewMoneyFromString(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if m.String() != c.want {
			t.Fatalf("parse %q got %s want %s", c.in, m.String(), c.want)
		}
	}
}

func TestRounding(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"22.179", "22.18"},
		{"45.191", "45.19"},
	}
	for _, c := range cases {
		m := MustMoney(c.in)
		if got := m.Round().String(); got != c.out {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestWeeklyConversions(t *testing.T) {
	m := NewMoney(5200)
	if got := m.Weekly().String(); got != "100.00" {
		t.Fatalf("Weekly got %s", got)
	}
	if got := NewMoney(5.24).AnnualFromWeekly().String(); got != "272.48" {
		t.Fatalf("AnnualFromWeekly got %s", got)
	}
}

func TestArithmetic(t *testing.T) {
	income := NewMoney(1000)
	if got := income.ApplyRate(stddec.NewFromFloat(0.15)).String(); got != "150.00" {
		t.Fatalf("ApplyRate got %s want 150.00", got)
	}

	a := NewMoney(10.10)
	b := NewMoney(5.05)
	if got := a.Add(b).String(); got != "15.15" {
		t.Fatalf("Add got %s", got)
	}
	if got := a.Sub(b).String(); got != "5.05" {
		t.Fatalf("Sub got %s", got)
	}
	if got := a.Mul(stddec.NewFromFloat(2.5)).String(); got != "25.25" {
		t.Fatalf("Mul got %s", got)
	}
	if got := a.Div(stddec.NewFromFloat(2)).String(); got != "5.05" {
		t.Fatalf("Div got %s", got)
	}
	if got := Sum(a, b, NewMoney(1)).String(); got != "16.15" {
		t.Fatalf("Sum got %s", got)
	}
}

func TestComparisonsAndUtils(t *testing.T) {
	a := NewMoney(10)
	b := NewMoney(20)

	if !b.GreaterThan(a) || !b.GreaterThanOrEqual(a) {
		t.Fatalf("GreaterThan/GreaterThanOrEqual logic failure")
	}
	if !a.LessThan(b) || !a.LessThanOrEqual(b) {
		t.Fatalf("LessThan/LessThanOrEqual logic failure")
	}
	if !a.Equal(NewMoney(10)) || b.Equal(a) {
		t.Fatalf("Equal logic failure")
	}
	if !Zero().IsZero() {
		t.Fatalf("Zero should be zero")
	}
	if !NewMoney(-0.01).IsNegative() || a.IsNegative() {
		t.Fatalf("IsNegative logic failure")
	}
	if !NewMoney(-3).ClampZero().IsZero() || !a.ClampZero().Equal(a) {
		t.Fatalf("ClampZero logic failure")
	}
	if !Min(a, b).Equal(a) || !Max(a, b).Equal(b) {
		t.Fatalf("Min/Max failed")
	}
}

func TestStringAndFormat(t *testing.T) {
	m := NewMoney(1234.5)
	if got := m.String(); got != "1234.50" {
		t.Fatalf("String got %s", got)
	}
	if got := m.Format(); got != "€1234.50" {
		t.Fatalf("Format got %s", got)
	}
	if got := NewMoney(-2).Format(); got != "-€2.00" {
		t.Fatalf("negative Format got %s", got)
	}
	if got := MustMoney("0.125").Float64(); got != 0.13 {
		t.Fatalf("Float64 got %v", got)
	}
}
