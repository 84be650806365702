// Package dto holds the JSON shapes of the HTTP API as seen by a caller.
package dto

type ServiceResponse struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	FullPrice int64  `json:"full_price"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PlanResponse struct {
	ID              uint64 `json:"id"`
	PlanType        string `json:"plan_type"`
	DiscountPercent int32  `json:"discount_percent"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type ClientResponse struct {
	ID          uint64 `json:"id"`
	CompanyName string `json:"company_name"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type SubscriptionResponse struct {
	ID        uint64 `json:"id"`
	ClientID  uint64 `json:"client_id"`
	ServiceID uint64 `json:"service_id"`
	PlanID    uint64 `json:"plan_id"`
	Price     int64  `json:"price"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ServiceEnvelopeResponse struct {
	Service ServiceResponse `json:"service"`
}

type PlanEnvelopeResponse struct {
	Plan PlanResponse `json:"plan"`
}

type ClientEnvelopeResponse struct {
	Client ClientResponse `json:"client"`
}

type SubscriptionEnvelopeResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

type TotalSumResponse struct {
	TotalSum int64 `json:"total_sum"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
