package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/sale/dto"
	"github.com/stretchr/testify/assert"
)

type countingSales struct {
	calls int32
	err   error
}

func (c *countingSales) CreateSale(context.Context, *dto.CreateSaleInput) (*model.Sale, error) {
	return nil, nil
}

func (c *countingSales) RefreshActiveSales(context.Context) error {
	atomic.AddInt32(&c.calls, 1)
	return c.err
}

func (c *countingSales) ActiveModelIDs(context.Context) ([]int64, error) { return nil, nil }

func TestScheduler_RefreshesOnStartTickAndTrigger(t *testing.T) {
	uc := &countingSales{err: errors.New("db down")}
	s := NewScheduler(uc, 20*time.Millisecond, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&uc.calls) >= 3 }, time.Second, 5*time.Millisecond)
	s.Trigger()
	s.Trigger()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_TriggerCoalesces(t *testing.T) {
	s := NewScheduler(&countingSales{}, time.Hour, logger.NewNop())
	s.Trigger()
	s.Trigger()
	assert.Len(t, s.trigger, 1)
}

func TestNewScheduler_NonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		uc := &countingSales{}
		s := NewScheduler(uc, interval, logger.NewNop())
		assert.Equal(t, DefaultInterval, s.interval)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			s.Start(ctx)
			close(done)
		}()
		assert.Eventually(t, func() bool { return atomic.LoadInt32(&uc.calls) >= 1 }, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop")
		}
	}
}
