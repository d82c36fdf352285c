package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/districtfs/internal/statement"
)

// DefaultTolerance is the largest difference still reported as balanced.
var DefaultTolerance = decimal.RequireFromString("1.00")

// Balanced is a statement with two sides of an accounting equation.
type Balanced interface {
	BalanceSides() (left, right decimal.Decimal)
}

// Validate checks |left - right| <= tolerance. It never fails; an
// imbalance is reported in the result. A negative tolerance is treated as zero.
func Validate(s Balanced, tolerance decimal.Decimal) statement.BalanceValidation {
	if tolerance.IsNegative() {
		tolerance = decimal.Zero
	}
	left, right := s.BalanceSides()
	diff := left.Sub(right)
	return statement.BalanceValidation{
		LeftSide:   left,
		RightSide:  right,
		Difference: diff,
		Balanced:   diff.Abs().LessThanOrEqual(tolerance),
		Tolerance:  tolerance,
	}
}

// Describe renders a one-line summary of v for logs and CLI output.
func Describe(k statement.Kind, v statement.BalanceValidation) string {
	if v.Balanced {
		return fmt.Sprintf("%s balanced (%s = %s)", k, v.LeftSide.StringFixed(2), v.RightSide.StringFixed(2))
	}
	return fmt.Sprintf("%s out of balance: left (%s) != right (%s), difference %s exceeds tolerance %s",
		k, v.LeftSide.StringFixed(2), v.RightSide.StringFixed(2), v.Difference.StringFixed(2), v.Tolerance.StringFixed(2))
}
