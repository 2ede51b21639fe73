package telegram

import (
	"sync"
	"testing"
)

func TestStateManagerGetReturnsCopy(t *testing.T) {
	m := NewStateManager()
	m.Set(1, &UserState{State: StateCheckCode, CheckTestID: 12345})

	got := m.Get(1)
	got.CheckTestID = 99999

	if again := m.Get(1); again.CheckTestID != 12345 {
		t.Fatalf("stored state mutated through copy: %d", again.CheckTestID)
	}
}

func TestStateManagerUnknownUser(t *testing.T) {
	m := NewStateManager()
	if st := m.Get(42); st.State != StateNone {
		t.Fatalf("unknown user state = %q, want none", st.State)
	}
}

func TestStateManagerUpdateField(t *testing.T) {
	m := NewStateManager()
	m.UpdateField(7, func(s *UserState) {
		s.State = StateNewTestKey
		s.TestTitle = "Algebra"
	})

	st := m.Get(7)
	if st.State != StateNewTestKey || st.TestTitle != "Algebra" {
		t.Fatalf("unexpected state after update: %+v", st)
	}

	m.Clear(7)
	if st := m.Get(7); st.State != StateNone {
		t.Fatalf("state survived Clear: %q", st.State)
	}
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	m := NewStateManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.Set(id, &UserState{State: StateCheckAnswers})
			m.Get(id)
			m.UpdateField(id, func(s *UserState) { s.CertIndex++ })
			m.Clear(id)
		}(int64(i % 5))
	}
	wg.Wait()
}
