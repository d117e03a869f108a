package domain

import (
	"errors"
	"time"
)

var ErrInventoryNotFound = errors.New("inventory item not found")

type Inventory struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
