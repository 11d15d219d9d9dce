package users

import (
	"errors"
	"time"
)

type GoalMode string

const (
	GoalModeLose  GoalMode = "lose"
	GoalModeGain  GoalMode = "gain"
	GoalModeTrack GoalMode = "track"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	GoalMode     GoalMode  `json:"goal_mode"`
	CreatedAt    time.Time `json:"created_at"`
}

type Patch struct {
	Name     *string `json:"name" validate:"omitnil,notblank,max=100"`
	Email    *string `json:"email" validate:"omitnil,email"`
	GoalMode *string `json:"goal_mode" validate:"omitnil,oneof=lose gain track"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.GoalMode == nil
}
