package entity

import "time"

const (
	PlanTypeFull     = "full"
	PlanTypeStudents = "students"
	PlanTypeDiscount = "discount"
)

const MaxDiscountPercent int32 = 100

type Plan struct {
	ID              uint64
	PlanType        string
	DiscountPercent int32
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
