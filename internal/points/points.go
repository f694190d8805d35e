// Package points implements the deterministic receipt scoring rules.
package points

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/msundar/receipt-processor/internal/types"
)

// Money arithmetic uses exact decimal values. Binary floating point breaks
// the multiple-of-0.25 check for some totals, so floats never touch a price.
var (
	quarter = decimal.RequireFromString("0.25")
	fifth   = decimal.RequireFromString("0.2")
)

var (
	bonusWindowOpen  = types.TimeOfDay{Hour: 14}
	bonusWindowClose = types.TimeOfDay{Hour: 16}
)

// Calculate maps a valid receipt to its score. It is pure and total: for any
// receipt that passed validation it returns a non-negative integer and never
// fails. The rules are independent and additive.
func Calculate(r *types.Receipt, rs Ruleset) int {
	pts := 0

	// One point per alphanumeric character in the retailer name. Spaces,
	// ampersands and hyphens allowed by the retailer pattern do not count.
	for _, ch := range r.Retailer {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			pts++
		}
	}

	if total, err := decimal.NewFromString(r.Total); err == nil {
		// 50 points for a round dollar amount with no cents.
		if total.IsInteger() {
			pts += 50
		}
		// 25 points if the total is a multiple of 0.25.
		if total.Mod(quarter).IsZero() {
			pts += 25
		}
	}

	// 5 points for every two items on the receipt.
	pts += len(r.Items) / 2 * 5

	for _, item := range r.Items {
		// If the trimmed description length is a multiple of 3, the item
		// earns ceil(price * 0.2) points. Zero length qualifies (0 % 3 == 0)
		// but the description pattern requires at least one character, so
		// that branch is unreachable in practice; it is still safe.
		if utf8.RuneCountInString(item.ShortDescription)%3 == 0 {
			if price, err := decimal.NewFromString(item.Price); err == nil {
				pts += int(price.Mul(fifth).Ceil().IntPart())
			}
		}

		if rs.DescriptionBonus() && startsWithG(item.ShortDescription) {
			pts += 10
		}
	}

	// 6 points if the day of the purchase date is odd.
	if r.PurchaseDate.Day()%2 == 1 {
		pts += 6
	}

	// 10 points if the purchase time is strictly between 14:00 and 16:00.
	if r.PurchaseTime.After(bonusWindowOpen) && r.PurchaseTime.Before(bonusWindowClose) {
		pts += 10
	}

	return pts
}

func startsWithG(description string) bool {
	return strings.HasPrefix(description, "g") || strings.HasPrefix(description, "G")
}
