package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Hegpro/Samrt-hostel-management/internal/model"
)

type stubSurplusService struct {
	sweeps atomic.Int64
}

func (s *stubSurplusService) Post(ctx context.Context, posterID uuid.UUID, title, description, quantity string, deadline time.Time, image []byte) (*model.SurplusFood, error) {
	return nil, nil
}

func (s *stubSurplusService) ListAvailable(ctx context.Context) ([]model.SurplusFood, error) {
	return nil, nil
}

func (s *stubSurplusService) Claim(ctx context.Context, surplusID, ngoID uuid.UUID) (*model.SurplusFood, error) {
	return nil, nil
}

func (s *stubSurplusService) UpdateStatus(ctx context.Context, surplusID, posterID uuid.UUID, status model.SurplusStatus) (*model.SurplusFood, error) {
	return nil, nil
}

func (s *stubSurplusService) ListMine(ctx context.Context, posterID uuid.UUID) ([]model.SurplusFood, error) {
	return nil, nil
}

func (s *stubSurplusService) ListClaimed(ctx context.Context, ngoID uuid.UUID) ([]model.SurplusFood, error) {
	return nil, nil
}

func (s *stubSurplusService) SweepExpired(ctx context.Context) (int, error) {
	s.sweeps.Add(1)
	return 0, nil
}

func TestSurplusExpiry_SweepsOnStartAndTick(t *testing.T) {
	stub := &stubSurplusService{}
	expiry := NewSurplusExpiry(stub, 10*time.Millisecond)

	expiry.Start()
	time.Sleep(35 * time.Millisecond)
	expiry.Stop()

	// one initial sweep plus at least one tick
	assert.GreaterOrEqual(t, stub.sweeps.Load(), int64(2))
}

func TestSurplusExpiry_StopWaitsForLoop(t *testing.T) {
	stub := &stubSurplusService{}
	expiry := NewSurplusExpiry(stub, time.Hour)

	expiry.Start()
	done := make(chan struct{})
	go func() {
		expiry.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Equal(t, int64(1), stub.sweeps.Load())
}
