// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/Hegpro/Samrt-hostel-management/internal/service"
)

// SurplusExpiry periodically expires surplus food postings whose deadline
// has passed. The sweep is idempotent, so it coexists with the lazy expiry
// done on reads and claims.
type SurplusExpiry struct {
	surplus  service.SurplusService
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewSurplusExpiry creates the expiry sweeper.
func NewSurplusExpiry(surplus service.SurplusService, interval time.Duration) *SurplusExpiry {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SurplusExpiry{
		surplus:  surplus,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. An initial sweep runs immediately so
// postings expired while the service was down are caught on boot.
func (s *SurplusExpiry) Start() {
	go s.run()
}

func (s *SurplusExpiry) run() {
	defer close(s.done)

	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *SurplusExpiry) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := s.surplus.SweepExpired(ctx)
	if err != nil {
		log.Printf("surplus expiry sweep: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("surplus expiry sweep: expired %d postings", expired)
	}
}

// Stop halts the sweep loop and waits for it to finish.
func (s *SurplusExpiry) Stop() {
	close(s.stop)
	<-s.done
}
