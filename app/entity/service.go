package entity

import "time"

const (
	MaxServiceNameLength = 50
	MaxFullPrice         = 2147483647
)

type Service struct {
	ID        uint64
	Name      string
	FullPrice int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
