package engine

import "cost-service/internal/model"

// MonthlyEquivalent normalizes a cost record to its average monthly rate.
// Recurring costs are divided down to a month; one-time costs are spread over
// their amortization period. A one-time cost with no positive amortization
// period is sunk spend and contributes nothing to the monthly run rate, though
// it still counts toward lifetime totals computed elsewhere.
//
// Amounts are passed through as-is: input validation belongs to the caller.
func MonthlyEquivalent(c model.Cost) float64 {
	switch c.Recurrence {
	case model.RecurrenceMonthly:
		return c.Amount
	case model.RecurrenceQuarterly:
		return c.Amount / 3
	case model.RecurrenceAnnual:
		return c.Amount / 12
	case model.RecurrenceOneTime:
		if c.AmortizationPeriod > 0 {
			return c.Amount / float64(c.AmortizationPeriod)
		}
		return 0
	default:
		return 0
	}
}

// directAmount is what a task-scoped cost adds to that task's cost views:
// recurring costs at their monthly-equivalent rate, one-time costs in full
// regardless of amortization, since they are direct spend on the task rather
// than ongoing run cost.
func directAmount(c model.Cost) float64 {
	if c.Recurrence == model.RecurrenceOneTime {
		return c.Amount
	}
	return MonthlyEquivalent(c)
}
