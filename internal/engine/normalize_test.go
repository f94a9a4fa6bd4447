package engine

import (
	"testing"

	"cost-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name string
		cost model.Cost
		want float64
	}{
		{
			name: "monthly passes through",
			cost: model.Cost{Amount: 250, Recurrence: model.RecurrenceMonthly},
			want: 250,
		},
		{
			name: "quarterly divides by three",
			cost: model.Cost{Amount: 300, Recurrence: model.RecurrenceQuarterly},
			want: 100,
		},
		{
			name: "annual divides by twelve",
			cost: model.Cost{Amount: 1200, Recurrence: model.RecurrenceAnnual},
			want: 100,
		},
		{
			name: "one-time amortized over period",
			cost: model.Cost{Amount: 6000, Recurrence: model.RecurrenceOneTime, AmortizationPeriod: 12},
			want: 500,
		},
		{
			name: "one-time without amortization is sunk",
			cost: model.Cost{Amount: 9999, Recurrence: model.RecurrenceOneTime},
			want: 0,
		},
		{
			name: "one-time with zero period falls back to sunk",
			cost: model.Cost{Amount: 5000, Recurrence: model.RecurrenceOneTime, AmortizationPeriod: 0},
			want: 0,
		},
		{
			name: "one-time with negative period falls back to sunk",
			cost: model.Cost{Amount: 5000, Recurrence: model.RecurrenceOneTime, AmortizationPeriod: -3},
			want: 0,
		},
		{
			name: "negative amount passes through unchanged",
			cost: model.Cost{Amount: -90, Recurrence: model.RecurrenceQuarterly},
			want: -30,
		},
		{
			name: "zero amount",
			cost: model.Cost{Amount: 0, Recurrence: model.RecurrenceMonthly},
			want: 0,
		},
		{
			name: "unknown recurrence contributes nothing",
			cost: model.Cost{Amount: 100, Recurrence: model.Recurrence("weekly")},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MonthlyEquivalent(tt.cost), 1e-9)
		})
	}
}

func TestMonthlyEquivalent_LinearInAmount(t *testing.T) {
	recurrences := []model.Cost{
		{Recurrence: model.RecurrenceMonthly},
		{Recurrence: model.RecurrenceQuarterly},
		{Recurrence: model.RecurrenceAnnual},
		{Recurrence: model.RecurrenceOneTime, AmortizationPeriod: 7},
	}
	for _, base := range recurrences {
		single := base
		single.Amount = 123.45
		double := base
		double.Amount = 246.90
		assert.InDelta(t, 2*MonthlyEquivalent(single), MonthlyEquivalent(double), 1e-9,
			"doubling the amount must double the monthly equivalent for %s", base.Recurrence)
	}
}

func TestDirectAmount(t *testing.T) {
	// One-time spend on a task counts in full even without amortization.
	oneTime := model.Cost{Amount: 800, Recurrence: model.RecurrenceOneTime}
	assert.InDelta(t, 800, directAmount(oneTime), 1e-9)

	// Recurring spend enters at its monthly rate.
	annual := model.Cost{Amount: 1200, Recurrence: model.RecurrenceAnnual}
	assert.InDelta(t, 100, directAmount(annual), 1e-9)
}
