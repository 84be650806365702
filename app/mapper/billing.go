package mapper

import (
	"time"

	"github.com/vibast-solutions/ms-go-services/app/entity"
	"github.com/vibast-solutions/ms-go-services/app/types"
)

func ServiceToMessage(item *entity.Service) *types.Service {
	if item == nil {
		return nil
	}

	return &types.Service{
		Id:        item.ID,
		Name:      item.Name,
		FullPrice: item.FullPrice,
		CreatedAt: formatTime(item.CreatedAt),
		UpdatedAt: formatTime(item.UpdatedAt),
	}
}

func ServicesToMessages(items []*entity.Service) []*types.Service {
	result := make([]*types.Service, 0, len(items))
	for _, item := range items {
		result = append(result, ServiceToMessage(item))
	}
	return result
}

func PlanToMessage(item *entity.Plan) *types.Plan {
	if item == nil {
		return nil
	}

	return &types.Plan{
		Id:              item.ID,
		PlanType:        item.PlanType,
		DiscountPercent: item.DiscountPercent,
		CreatedAt:       formatTime(item.CreatedAt),
		UpdatedAt:       formatTime(item.UpdatedAt),
	}
}

func PlansToMessages(items []*entity.Plan) []*types.Plan {
	result := make([]*types.Plan, 0, len(items))
	for _, item := range items {
		result = append(result, PlanToMessage(item))
	}
	return result
}

func ClientToMessage(item *entity.Client) *types.Client {
	if item == nil {
		return nil
	}

	return &types.Client{
		Id:          item.ID,
		CompanyName: item.CompanyName,
		CreatedAt:   formatTime(item.CreatedAt),
		UpdatedAt:   formatTime(item.UpdatedAt),
	}
}

func ClientsToMessages(items []*entity.Client) []*types.Client {
	result := make([]*types.Client, 0, len(items))
	for _, item := range items {
		result = append(result, ClientToMessage(item))
	}
	return result
}

func SubscriptionToMessage(item *entity.Subscription) *types.Subscription {
	if item == nil {
		return nil
	}

	return &types.Subscription{
		Id:        item.ID,
		ClientId:  item.ClientID,
		ServiceId: item.ServiceID,
		PlanId:    item.PlanID,
		Price:     item.Price,
		Comment:   item.Comment,
		CreatedAt: formatTime(item.CreatedAt),
		UpdatedAt: formatTime(item.UpdatedAt),
	}
}

func SubscriptionsToMessages(items []*entity.Subscription) []*types.Subscription {
	result := make([]*types.Subscription, 0, len(items))
	for _, item := range items {
		result = append(result, SubscriptionToMessage(item))
	}
	return result
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
