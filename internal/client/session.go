package client

import (
	"sync"

	"github.com/2beens/fitlog/internal/gymstats/views"
	"github.com/2beens/fitlog/internal/users"
)

// Session holds the signed in user, the bearer token and display preferences.
// A zero Session is signed out and displays kilograms.
type Session struct {
	mutex sync.RWMutex
	token string
	user  *users.User
	unit  views.Unit
}

func NewSession(unit views.Unit) *Session {
	return &Session{unit: unit}
}

func (s *Session) Start(token string, user *users.User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.token = token
	s.user = user
}

// End forgets the token and the user. The display unit is a device preference and survives.
func (s *Session) End() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) Active() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.token != ""
}

func (s *Session) Token() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.token
}

// User returns a copy of the signed in user, or nil.
func (s *Session) User() *users.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) GoalMode() users.GoalMode {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.user == nil || s.user.GoalMode == "" {
		return users.GoalModeTrack
	}
	return s.user.GoalMode
}

func (s *Session) Unit() views.Unit {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.unit == "" {
		return views.UnitKg
	}
	return s.unit
}

func (s *Session) SetUnit(unit views.Unit) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.unit = unit
}

func (s *Session) setUser(user *users.User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.token != "" {
		s.user = user
	}
}
