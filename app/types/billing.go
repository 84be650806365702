// Package types holds the request and response messages shared by the HTTP and
// gRPC transports. Getters are nil safe so services can accept narrow interfaces.
package types

type Service struct {
	Id        uint64 `json:"id"`
	Name      string `json:"name"`
	FullPrice int64  `json:"full_price"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Plan struct {
	Id              uint64 `json:"id"`
	PlanType        string `json:"plan_type"`
	DiscountPercent int32  `json:"discount_percent"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type Client struct {
	Id          uint64 `json:"id"`
	CompanyName string `json:"company_name"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type Subscription struct {
	Id        uint64 `json:"id"`
	ClientId  uint64 `json:"client_id"`
	ServiceId uint64 `json:"service_id"`
	PlanId    uint64 `json:"plan_id"`
	Price     int64  `json:"price"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type IDRequest struct {
	Id uint64 `json:"id"`
}

func (r *IDRequest) GetId() uint64 {
	if r == nil {
		return 0
	}
	return r.Id
}

type CreateServiceRequest struct {
	Name      string `json:"name"`
	FullPrice int64  `json:"full_price"`
}

func (r *CreateServiceRequest) GetName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

func (r *CreateServiceRequest) GetFullPrice() int64 {
	if r == nil {
		return 0
	}
	return r.FullPrice
}

type UpdateServiceRequest struct {
	Id           uint64 `json:"id"`
	HasName      bool   `json:"has_name"`
	Name         string `json:"name"`
	HasFullPrice bool   `json:"has_full_price"`
	FullPrice    int64  `json:"full_price"`
}

func (r *UpdateServiceRequest) GetId() uint64 {
	if r == nil {
		return 0
	}
	return r.Id
}

func (r *UpdateServiceRequest) GetHasName() bool {
	return r != nil && r.HasName
}

func (r *UpdateServiceRequest) GetName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

func (r *UpdateServiceRequest) GetHasFullPrice() bool {
	return r != nil && r.HasFullPrice
}

func (r *UpdateServiceRequest) GetFullPrice() int64 {
	if r == nil {
		return 0
	}
	return r.FullPrice
}

type CreatePlanRequest struct {
	PlanType        string `json:"plan_type"`
	DiscountPercent int32  `json:"discount_percent"`
}

func (r *CreatePlanRequest) GetPlanType() string {
	if r == nil {
		return ""
	}
	return r.PlanType
}

func (r *CreatePlanRequest) GetDiscountPercent() int32 {
	if r == nil {
		return 0
	}
	return r.DiscountPercent
}

type UpdatePlanRequest struct {
	Id                 uint64 `json:"id"`
	HasPlanType        bool   `json:"has_plan_type"`
	PlanType           string `json:"plan_type"`
	HasDiscountPercent bool   `json:"has_discount_percent"`
	DiscountPercent    int32  `json:"discount_percent"`
}

func (r *UpdatePlanRequest) GetId() uint64 {
	if r == nil {
		return 0
	}
	return r.Id
}

func (r *UpdatePlanRequest) GetHasPlanType() bool {
	return r != nil && r.HasPlanType
}

func (r *UpdatePlanRequest) GetPlanType() string {
	if r == nil {
		return ""
	}
	return r.PlanType
}

func (r *UpdatePlanRequest) GetHasDiscountPercent() bool {
	return r != nil && r.HasDiscountPercent
}

func (r *UpdatePlanRequest) GetDiscountPercent() int32 {
	if r == nil {
		return 0
	}
	return r.DiscountPercent
}

type ListPlansRequest struct {
	PlanType string `json:"plan_type"`
}

func (r *ListPlansRequest) GetPlanType() string {
	if r == nil {
		return ""
	}
	return r.PlanType
}

type CreateClientRequest struct {
	CompanyName string `json:"company_name"`
}

func (r *CreateClientRequest) GetCompanyName() string {
	if r == nil {
		return ""
	}
	return r.CompanyName
}

type CreateSubscriptionRequest struct {
	ClientId  uint64 `json:"client_id"`
	ServiceId uint64 `json:"service_id"`
	PlanId    uint64 `json:"plan_id"`
}

func (r *CreateSubscriptionRequest) GetClientId() uint64 {
	if r == nil {
		return 0
	}
	return r.ClientId
}

func (r *CreateSubscriptionRequest) GetServiceId() uint64 {
	if r == nil {
		return 0
	}
	return r.ServiceId
}

func (r *CreateSubscriptionRequest) GetPlanId() uint64 {
	if r == nil {
		return 0
	}
	return r.PlanId
}

type ListSubscriptionsRequest struct {
	ClientId  uint64 `json:"client_id"`
	ServiceId uint64 `json:"service_id"`
	PlanId    uint64 `json:"plan_id"`
}

func (r *ListSubscriptionsRequest) GetClientId() uint64 {
	if r == nil {
		return 0
	}
	return r.ClientId
}

func (r *ListSubscriptionsRequest) GetServiceId() uint64 {
	if r == nil {
		return 0
	}
	return r.ServiceId
}

func (r *ListSubscriptionsRequest) GetPlanId() uint64 {
	if r == nil {
		return 0
	}
	return r.PlanId
}

type TotalSumRequest struct{}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ServiceResponse struct {
	Service *Service `json:"service"`
}

type ListServicesResponse struct {
	Services []*Service `json:"services"`
}

type PlanResponse struct {
	Plan *Plan `json:"plan"`
}

type ListPlansResponse struct {
	Plans []*Plan `json:"plans"`
}

type ClientResponse struct {
	Client *Client `json:"client"`
}

type ListClientsResponse struct {
	Clients []*Client `json:"clients"`
}

type SubscriptionResponse struct {
	Subscription *Subscription `json:"subscription"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []*Subscription `json:"subscriptions"`
}

type TotalSumResponse struct {
	TotalSum int64 `json:"total_sum"`
}
