package entity

import "time"

const MaxCompanyNameLength = 100

type Client struct {
	ID          uint64
	CompanyName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
