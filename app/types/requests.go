package types

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/vibast-solutions/ms-go-services/app/entity"
)

func NewIDRequestFromContext(ctx echo.Context) (*IDRequest, error) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		return nil, err
	}
	return &IDRequest{Id: id}, nil
}

func (r *IDRequest) Validate() error {
	if r.GetId() == 0 {
		return errors.New("invalid id")
	}
	return nil
}

func NewCreateServiceRequestFromContext(ctx echo.Context) (*CreateServiceRequest, error) {
	var body CreateServiceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Name = strings.TrimSpace(body.Name)
	return &body, nil
}

func (r *CreateServiceRequest) Validate() error {
	if err := validateServiceName(r.GetName()); err != nil {
		return err
	}
	return validateFullPrice(r.GetFullPrice())
}

func NewUpdateServiceRequestFromContext(ctx echo.Context) (*UpdateServiceRequest, error) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		return nil, err
	}

	var body struct {
		Name      *string `json:"name"`
		FullPrice *int64  `json:"full_price"`
	}
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	req := &UpdateServiceRequest{Id: id}
	if body.Name != nil {
		req.HasName = true
		req.Name = strings.TrimSpace(*body.Name)
	}
	if body.FullPrice != nil {
		req.HasFullPrice = true
		req.FullPrice = *body.FullPrice
	}
	return req, nil
}

func (r *UpdateServiceRequest) Validate() error {
	if r.GetId() == 0 {
		return errors.New("invalid service id")
	}
	if !r.GetHasName() && !r.GetHasFullPrice() {
		return errors.New("at least one of name or full_price is required")
	}
	if r.GetHasName() {
		if err := validateServiceName(r.GetName()); err != nil {
			return err
		}
	}
	if r.GetHasFullPrice() {
		return validateFullPrice(r.GetFullPrice())
	}
	return nil
}

func NewCreatePlanRequestFromContext(ctx echo.Context) (*CreatePlanRequest, error) {
	var body CreatePlanRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.PlanType = strings.ToLower(strings.TrimSpace(body.PlanType))
	return &body, nil
}

func (r *CreatePlanRequest) Validate() error {
	if err := validatePlanType(r.GetPlanType()); err != nil {
		return err
	}
	return validateDiscount(r.GetDiscountPercent())
}

func NewUpdatePlanRequestFromContext(ctx echo.Context) (*UpdatePlanRequest, error) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		return nil, err
	}

	var body struct {
		PlanType        *string `json:"plan_type"`
		DiscountPercent *int32  `json:"discount_percent"`
	}
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	req := &UpdatePlanRequest{Id: id}
	if body.PlanType != nil {
		req.HasPlanType = true
		req.PlanType = strings.ToLower(strings.TrimSpace(*body.PlanType))
	}
	if body.DiscountPercent != nil {
		req.HasDiscountPercent = true
		req.DiscountPercent = *body.DiscountPercent
	}
	return req, nil
}

func (r *UpdatePlanRequest) Validate() error {
	if r.GetId() == 0 {
		return errors.New("invalid plan id")
	}
	if !r.GetHasPlanType() && !r.GetHasDiscountPercent() {
		return errors.New("at least one of plan_type or discount_percent is required")
	}
	if r.GetHasPlanType() {
		if err := validatePlanType(r.GetPlanType()); err != nil {
			return err
		}
	}
	if r.GetHasDiscountPercent() {
		return validateDiscount(r.GetDiscountPercent())
	}
	return nil
}

func NewListPlansRequestFromContext(ctx echo.Context) (*ListPlansRequest, error) {
	return &ListPlansRequest{PlanType: strings.ToLower(strings.TrimSpace(ctx.QueryParam("plan_type")))}, nil
}

func (r *ListPlansRequest) Validate() error {
	if r.GetPlanType() == "" {
		return nil
	}
	return validatePlanType(r.GetPlanType())
}

func NewCreateClientRequestFromContext(ctx echo.Context) (*CreateClientRequest, error) {
	var body CreateClientRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.CompanyName = strings.TrimSpace(body.CompanyName)
	return &body, nil
}

func (r *CreateClientRequest) Validate() error {
	if r.GetCompanyName() == "" {
		return errors.New("company_name is required")
	}
	if utf8.RuneCountInString(r.GetCompanyName()) > entity.MaxCompanyNameLength {
		return errors.New("company_name must be at most 100 characters")
	}
	return nil
}

func NewCreateSubscriptionRequestFromContext(ctx echo.Context) (*CreateSubscriptionRequest, error) {
	var body CreateSubscriptionRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (r *CreateSubscriptionRequest) Validate() error {
	if r.GetClientId() == 0 {
		return errors.New("client_id is required")
	}
	if r.GetServiceId() == 0 {
		return errors.New("service_id is required")
	}
	if r.GetPlanId() == 0 {
		return errors.New("plan_id is required")
	}
	return nil
}

func NewListSubscriptionsRequestFromContext(ctx echo.Context) (*ListSubscriptionsRequest, error) {
	req := &ListSubscriptionsRequest{}
	for name, target := range map[string]*uint64{
		"client_id":  &req.ClientId,
		"service_id": &req.ServiceId,
		"plan_id":    &req.PlanId,
	} {
		raw := strings.TrimSpace(ctx.QueryParam(name))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		*target = value
	}
	return req, nil
}

func (r *ListSubscriptionsRequest) Validate() error {
	return nil
}

func parseID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}

func validateServiceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(name) > entity.MaxServiceNameLength {
		return errors.New("name must be at most 50 characters")
	}
	return nil
}

func validateFullPrice(price int64) error {
	if price < 0 || price > entity.MaxFullPrice {
		return errors.New("full_price must be between 0 and 2147483647")
	}
	return nil
}

func validatePlanType(planType string) error {
	switch planType {
	case "full", "students", "discount":
		return nil
	default:
		return errors.New("plan_type must be one of full, students, discount")
	}
}

func validateDiscount(discount int32) error {
	if discount < 0 || discount > entity.MaxDiscountPercent {
		return errors.New("discount_percent must be between 0 and 100")
	}
	return nil
}
