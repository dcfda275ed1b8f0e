package report

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ratePlaces is the precision of every percentage, equivalent to a ratio
// rounded half-up to four places
const ratePlaces = 2

// percent returns part/whole*100 rounded half away from zero, or zero
// when whole is zero
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(ratePlaces)
}

// GrowthRate is (current − previous) / previous × 100. From a zero base it
// is 0 when current is also zero and 100 otherwise.
func GrowthRate(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return percent(current.Sub(previous), previous)
}

// ChangeRate is the change relative to previous as a percentage, zero
// when previous is zero
func ChangeRate(previous, current decimal.Decimal) decimal.Decimal {
	return percent(current.Sub(previous), previous)
}

// AchievementRate is actual / target × 100, zero when target is zero
func AchievementRate(actual, target int) decimal.Decimal {
	return percent(decimal.NewFromInt(int64(actual)), decimal.NewFromInt(int64(target)))
}

// ProfitRate is profit / revenue × 100, zero when revenue is zero
func ProfitRate(profit, revenue decimal.Decimal) decimal.Decimal {
	return percent(profit, revenue)
}

// Delta compares a figure with its value in the preceding window
type Delta struct {
	Previous     decimal.Decimal `json:"previous"`
	Current      decimal.Decimal `json:"current"`
	ChangeAmount decimal.Decimal `json:"change_amount"`
	ChangeRate   decimal.Decimal `json:"change_rate"`
	IsIncrease   bool            `json:"is_increase"`
}

// NewDelta builds a delta. IsIncrease is strict: no change is not an increase.
func NewDelta(previous, current decimal.Decimal) Delta {
	change := current.Sub(previous)
	return Delta{
		Previous:     previous,
		Current:      current,
		ChangeAmount: change,
		ChangeRate:   ChangeRate(previous, current),
		IsIncrease:   change.IsPositive(),
	}
}

// Plus combines two deltas over disjoint record sets
func (d Delta) Plus(o Delta) Delta {
	return NewDelta(d.Previous.Add(o.Previous), d.Current.Add(o.Current))
}
