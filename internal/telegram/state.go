package telegram

import (
	"sync"

	"test-checker-backend/internal/services"
)

const (
	StateNone = ""

	// Registration and profile editing.
	StateRegFirstName  = "reg_first_name"
	StateRegLastName   = "reg_last_name"
	StateRegPhone      = "reg_phone"
	StateEditFirstName = "edit_first_name"
	StateEditLastName  = "edit_last_name"
	StateEditPhone     = "edit_phone"

	// Test creation.
	StateNewTestTitle = "new_test_title"
	StateNewTestKey   = "new_test_key"

	// Answer checking.
	StateCheckCode    = "check_code"
	StateCheckAnswers = "check_answers"

	// Test finishing and certificate selection.
	StateFinishCode = "finish_code"
	StateCertPick   = "cert_pick"

	// Admin.
	StateAdminBroadcast  = "admin_broadcast"
	StateAdminDeleteTest = "admin_delete_test"
)

type UserState struct {
	State string

	// Registration scratch fields.
	FirstName string
	LastName  string

	// Test creation scratch fields.
	TestTitle string

	// Answer checking scratch fields.
	CheckTestID int64
	CorrectKey  string

	// Certificate selection scratch fields.
	CertIndex int
	CertMsgID int64
	Finalize  *services.FinalizeOutcome
}

type StateManager struct {
	mu    sync.RWMutex
	users map[int64]*UserState
}

func NewStateManager() *StateManager {
	return &StateManager{
		users: make(map[int64]*UserState),
	}
}

func (m *StateManager) Get(userID int64) *UserState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.users[userID]
	if !ok {
		return &UserState{}
	}
	cp := *s
	return &cp
}

func (m *StateManager) Set(userID int64, state *UserState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = state
}

func (m *StateManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

func (m *StateManager) UpdateField(userID int64, fn func(s *UserState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.users[userID]
	if !ok {
		s = &UserState{}
		m.users[userID] = s
	}
	fn(s)
}
