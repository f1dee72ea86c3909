package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"librental/internal/core/domain"
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func Test_CalculateTotalFee(t *testing.T) {
	tests := []struct {
		name       string
		dailyRate  decimal.NullDecimal
		rentalDays int
		expected   string
	}{
		{
			name:       "rate_times_days",
			dailyRate:  price("15.99"),
			rentalDays: 7,
			expected:   "111.93",
		},
		{
			name:       "single_day",
			dailyRate:  price("2.50"),
			rentalDays: 1,
			expected:   "2.50",
		},
		{
			name:       "rounds_half_up_to_two_decimals",
			dailyRate:  price("0.335"),
			rentalDays: 1,
			expected:   "0.34",
		},
		{
			name:       "absent_rate_yields_zero",
			dailyRate:  decimal.NullDecimal{},
			rentalDays: 7,
			expected:   "0",
		},
		{
			name:       "zero_days_yields_zero",
			dailyRate:  price("15.99"),
			rentalDays: 0,
			expected:   "0",
		},
		{
			name:       "negative_days_yields_zero",
			dailyRate:  price("15.99"),
			rentalDays: -3,
			expected:   "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.CalculateTotalFee(tc.dailyRate, tc.rentalDays)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, got)
		})
	}
}

func Test_CalculateLateFee(t *testing.T) {
	tests := []struct {
		name      string
		dailyRate decimal.NullDecimal
		daysLate  int64
		expected  string
	}{
		{
			name:      "three_days_late",
			dailyRate: price("15.99"),
			daysLate:  3,
			expected:  "7.20", // 15.99 * 0.15 * 3 = 7.1955 -> 7.20
		},
		{
			name:      "one_day_late",
			dailyRate: price("10.00"),
			daysLate:  1,
			expected:  "1.50",
		},
		{
			name:      "rounds_half_up",
			dailyRate: price("0.10"),
			daysLate:  1,
			expected:  "0.02", // 0.015 -> 0.02
		},
		{
			name:      "absent_rate_yields_zero",
			dailyRate: decimal.NullDecimal{},
			daysLate:  5,
			expected:  "0",
		},
		{
			name:      "on_time_yields_zero",
			dailyRate: price("15.99"),
			daysLate:  0,
			expected:  "0",
		},
		{
			name:      "early_return_yields_zero",
			dailyRate: price("15.99"),
			daysLate:  -2,
			expected:  "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.CalculateLateFee(tc.dailyRate, tc.daysLate)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, got)
		})
	}
}

func Test_DaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int64
	}{
		{
			name:     "three_days_apart",
			from:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "same_day_different_times",
			from:     time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
			to:       time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "time_of_day_discarded",
			from:     time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC),
			to:       time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "earlier_date_is_negative",
			from:     time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			expected: -3,
		},
		{
			name:     "across_month_boundary",
			from:     time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.DaysBetween(tc.from, tc.to))
		})
	}
}

func Test_StartOfDay(t *testing.T) {
	in := time.Date(2026, 3, 10, 17, 45, 30, 999, time.FixedZone("ICT", 7*3600))
	got := domain.StartOfDay(in)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got)
	assert.Zero(t, domain.DaysBetween(got, in))
}
