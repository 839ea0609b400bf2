package pending

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps pending registrations in a process-local map. It is the
// single-node default: records do not survive a restart and are invisible to
// other replicas.
type MemoryStore struct {
	mu   sync.Mutex
	regs map[string]Registration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{regs: make(map[string]Registration)}
}

func (s *MemoryStore) Put(_ context.Context, reg Registration) error {
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now()
	}
	s.mu.Lock()
	s.regs[reg.Email] = reg
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (*Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.regs[email]
	if !ok {
		return nil, nil
	}
	return &reg, nil
}

func (s *MemoryStore) DecrementAttempts(_ context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.regs[email]
	if !ok {
		return 0, nil
	}
	reg.Attempts--
	s.regs[email] = reg
	return reg.Attempts, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	delete(s.regs, email)
	s.mu.Unlock()
	return nil
}
