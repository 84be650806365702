package pricing

import "github.com/vibast-solutions/ms-go-services/app/entity"

func ServicePricingChanged(before, after *entity.Service) bool {
	return before.FullPrice != after.FullPrice
}

func PlanPricingChanged(before, after *entity.Plan) bool {
	return before.DiscountPercent != after.DiscountPercent
}
