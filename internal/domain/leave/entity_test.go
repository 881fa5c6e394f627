package leave

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestMonthsRemaining(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		appointment time.Time
		year        int
		want        int
	}{
		{"appointed years before", time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC), 2025, 12},
		{"appointed in january of the year", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 2025, 12},
		{"appointed mid year", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 2025, 6},
		{"appointed in december", time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), 2025, 1},
		{"appointed after the year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 2025, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsRemaining(tt.year, tt.appointment))
		})
	}
}

func TestSeedBalance_FullYear(t *testing.T) {
	t.Parallel()

	appointment := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	opening := SeedBalance(d("3.5"), d("1.25"), 2025, appointment)

	// 3.5 carry-forward + 1.25 x 12
	assert.True(t, d("18.5").Equal(opening), "opening = %s", opening)
}

func TestSeedBalance_MidYearAppointmentProrates(t *testing.T) {
	t.Parallel()

	appointment := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	opening := SeedBalance(decimal.Zero, d("1.25"), 2025, appointment)

	// September counts: 4 months x 1.25
	assert.True(t, d("5").Equal(opening), "opening = %s", opening)
}
