package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LateFeeRate is the per-day penalty as a fraction of the daily rate
var LateFeeRate = decimal.NewFromFloat(0.15)

// CalculateTotalFee computes the rental fee for the whole window:
// daily rate times rental days, rounded to 2 decimal places half-up.
// An absent rate or a non-positive day count yields zero, not an error.
func CalculateTotalFee(dailyRate decimal.NullDecimal, rentalDays int) decimal.Decimal {
	if !dailyRate.Valid || rentalDays <= 0 {
		return decimal.Zero
	}
	return dailyRate.Decimal.
		Mul(decimal.NewFromInt(int64(rentalDays))).
		Round(2)
}

// CalculateLateFee computes the penalty for a late return: daily rate
// times LateFeeRate times days late, rounded to 2 decimal places
// half-up. Zero when the return is not late or the rate is absent.
func CalculateLateFee(dailyRate decimal.NullDecimal, daysLate int64) decimal.Decimal {
	if !dailyRate.Valid || daysLate <= 0 {
		return decimal.Zero
	}
	return dailyRate.Decimal.
		Mul(LateFeeRate).
		Mul(decimal.NewFromInt(daysLate)).
		Round(2)
}

// DaysBetween counts whole calendar days from one date to another.
// Time-of-day and timezone offsets are discarded; a return at 23:59 on
// the expected date is not late.
func DaysBetween(from, to time.Time) int64 {
	return int64(StartOfDay(to).Sub(StartOfDay(from)).Hours() / 24)
}

// StartOfDay truncates a timestamp to midnight UTC. Due-date
// comparisons work on calendar days, same as DaysBetween: a
// reservation due today is not yet overdue.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
