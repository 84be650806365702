// Package pricing holds the subscription price and comment formulas and the
// change detection used to decide when they must be recomputed.
package pricing

import (
	"fmt"
	"unicode/utf8"

	"github.com/vibast-solutions/ms-go-services/app/entity"
)

// Price applies discountPercent to fullPrice and rounds half up to a whole unit.
// Inputs are expected to be validated: 0 <= fullPrice <= entity.MaxFullPrice and
// 0 <= discountPercent <= 100.
func Price(fullPrice int64, discountPercent int32) int64 {
	return (fullPrice*int64(entity.MaxDiscountPercent-discountPercent) + 50) / 100
}

// Comment renders the human readable summary stored next to the price.
// It depends only on the pricing inputs, so running it twice yields the same text.
func Comment(in *entity.PricingInput) string {
	comment := fmt.Sprintf("%s, %s plan (-%d%%): %d",
		in.ServiceName,
		in.PlanType,
		in.DiscountPercent,
		Price(in.FullPrice, in.DiscountPercent),
	)
	return truncate(comment, entity.MaxCommentLength)
}

func truncate(value string, maxRunes int) string {
	if utf8.RuneCountInString(value) <= maxRunes {
		return value
	}
	runes := []rune(value)
	return string(runes[:maxRunes])
}
