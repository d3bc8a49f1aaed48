package services

import (
	"context"
	"log"
	"time"

	"contracthub/internal/domain"
	"contracthub/internal/repository"
)

// ExpiryService is the background half of contract expiry: a fixed-rate
// scan that flips overdue contracts to EXPIRED. It never emits
// notifications; those come from the per-viewer scan on the notifications
// page.
type ExpiryService struct {
	repo     repository.ContractRepository
	interval time.Duration

	now func() time.Time
}

func NewExpiryService(repo repository.ContractRepository) *ExpiryService {
	return &ExpiryService{
		repo:     repo,
		interval: time.Hour,
		now:      time.Now,
	}
}

// Run scans once immediately, then on every tick until the context is
// cancelled. Ticks never overlap: the next scan waits for the previous one.
func (s *ExpiryService) Run(ctx context.Context) {
	if n, err := s.ScanOnce(); err != nil {
		log.Printf("contract expiry scan error: %v", err)
	} else if n > 0 {
		log.Printf("contract expiry scan: %d contract(s) expired", n)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.ScanOnce(); err != nil {
				log.Printf("contract expiry scan error: %v", err)
			} else if n > 0 {
				log.Printf("contract expiry scan: %d contract(s) expired", n)
			}
		}
	}
}

// ScanOnce expires every contract whose end date is strictly before today.
// Returns how many contracts were flipped.
func (s *ExpiryService) ScanOnce() (int, error) {
	today := truncateToDay(s.now())

	contracts, err := s.repo.FindScoped(domain.Scope{All: true})
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range contracts {
		contract := &contracts[i]
		if contract.Status == domain.StatusExpired {
			continue
		}
		if !truncateToDay(contract.EndDate).Before(today) {
			continue
		}
		contract.Status = domain.StatusExpired
		if err := s.repo.SaveContract(contract); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}
