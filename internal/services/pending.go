package services

import (
	"sync"
	"time"

	"contracthub/internal/domain"
)

// slotTTL bounds how long an abandoned signup may occupy its slot. The OTP
// itself expires far sooner; the slot survives so a resend can still work.
const slotTTL = 30 * time.Minute

// pendingRegistration is a signup that has passed the uniqueness checks but
// has not confirmed its OTP yet. The user is not in the store; the plain
// password is held until the slot is persisted or dropped.
type pendingRegistration struct {
	User      domain.User
	Password  string
	Otp       string
	OtpExpiry time.Time
	CreatedAt time.Time
}

// registrationStore keys in-progress registrations by an opaque token kept
// in a cookie, one slot per signup attempt. Concurrent signups from
// different sessions never share a slot. Get hands out copies; the only
// mutation path is Reissue, under the lock.
type registrationStore struct {
	mu    sync.Mutex
	slots map[string]*pendingRegistration

	now func() time.Time
}

func newRegistrationStore(now func() time.Time) *registrationStore {
	return &registrationStore{
		slots: make(map[string]*pendingRegistration),
		now:   now,
	}
}

func (s *registrationStore) Put(token string, reg pendingRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.slots[token] = &reg
}

func (s *registrationStore) Get(token string) (pendingRegistration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.slots[token]
	if !ok {
		return pendingRegistration{}, false
	}
	if s.now().Sub(reg.CreatedAt) > slotTTL {
		delete(s.slots, token)
		return pendingRegistration{}, false
	}
	return *reg, true
}

// Reissue swaps the slot's OTP in place. Reports whether the slot was still
// live.
func (s *registrationStore) Reissue(token, otp string, expiry time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.slots[token]
	if !ok {
		return false
	}
	if s.now().Sub(reg.CreatedAt) > slotTTL {
		delete(s.slots, token)
		return false
	}
	reg.Otp = otp
	reg.OtpExpiry = expiry
	return true
}

func (s *registrationStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, token)
}

func (s *registrationStore) sweepLocked() {
	for token, reg := range s.slots {
		if s.now().Sub(reg.CreatedAt) > slotTTL {
			delete(s.slots, token)
		}
	}
}
