package weights

import (
	"errors"
	"time"
)

var (
	ErrWeightNotFound = errors.New("weight not found")
	ErrWeightExists   = errors.New("weight for that date already exists")
)

// Weight is a body weight measurement, value is always stored in kg.
// CreatedAt is a calendar date, a user has at most one entry per date.
type Weight struct {
	ID        int       `json:"id"`
	UserID    string    `json:"-"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
