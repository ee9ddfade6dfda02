/*
Package generic provides the domain-agnostic primitives of the hour bank.

PURPOSE:
  Holds the quantities, calendar days, periods and errors that the
  attendance engine (package timesheet) is built from. Nothing here knows
  about punches or schedules; it only knows about time and amounts of it.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity of time with a unit (e.g., 8 hours, 482 minutes)
  - Unit: hours or minutes

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal so that sums of many short intervals
     do not drift (3.0333... + 4.9666... must be exactly 8)
  2. Boundary conversion: float64 only appears at the API/DTO edge
  3. Rounding: RoundHalfUp matches the dashboard's Math.round(x*10)/10

USAGE:
  worked := generic.Minutes(480).ToHours()      // 8 hours
  balance := worked.Sub(generic.Hours(40))      // -32 hours
  shown := balance.RoundHalfUp(1).Float64()

SEE ALSO:
  - time.go: Calendar days and clock times
  - period.go: Inclusive instant ranges (day, ISO week, month)
  - errors.go: MalformedInput and adapter errors
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity of time with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitHours   Unit = "hours"
	UnitMinutes Unit = "minutes"
)

var (
	sixty = decimal.NewFromInt(60)
	half  = decimal.NewFromFloat(0.5)
	ten   = decimal.NewFromInt(10)
)

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func NewAmountFromInt(value int64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(value), Unit: unit}
}

// Hours is shorthand for NewAmount(v, UnitHours).
func Hours(v float64) Amount { return NewAmount(v, UnitHours) }

// Minutes is shorthand for NewAmountFromInt(n, UnitMinutes).
func Minutes(n int64) Amount { return NewAmountFromInt(n, UnitMinutes) }

// ZeroHours is the additive identity for hour sums.
func ZeroHours() Amount { return Amount{Value: decimal.Zero, Unit: UnitHours} }

// ToHours converts a minute amount to hours. Hour amounts are returned as is.
func (a Amount) ToHours() Amount {
	if a.Unit == UnitMinutes {
		return Amount{Value: a.Value.Div(sixty), Unit: UnitHours}
	}
	return a
}

func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) Div(s decimal.Decimal) Amount { return Amount{Value: a.Value.Div(s), Unit: a.Unit} }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) Equal(b Amount) bool          { return a.Value.Equal(b.Value) }

// RoundHalfUp rounds to the given number of decimal places with ties going
// towards positive infinity, i.e. floor(x*10^places + 0.5) / 10^places.
// decimal.Round rounds ties away from zero, which differs for negative
// balances (-0.05 must become -0.0, not -0.1).
func (a Amount) RoundHalfUp(places int32) Amount {
	scale := ten.Pow(decimal.NewFromInt32(places))
	v := a.Value.Mul(scale).Add(half).Floor().Div(scale)
	return Amount{Value: v, Unit: a.Unit}
}

// Float64 returns the value as float64 for serialization.
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}

func (a Amount) String() string {
	return a.Value.String() + " " + string(a.Unit)
}
