package listener

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/stretchr/testify/assert"
)

type triggerCounter struct{ n int }

func (t *triggerCounter) Trigger() { t.n++ }

func TestProcessMessage(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"sale created", `{"event_type":"SaleCreated","model_id":3}`, 1},
		{"sale cancelled", `{"event_type":"SaleCancelled","model_id":3}`, 1},
		{"unrelated", `{"event_type":"OrderCreated"}`, 0},
		{"garbage", `{not json`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := &triggerCounter{}
			l := NewSaleListener(nil, counter, logger.NewNop())
			l.processMessage([]byte(tt.payload))
			assert.Equal(t, tt.want, counter.n)
		})
	}
}

func TestStart_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewSaleListener(nil, &triggerCounter{}, logger.NewNop())
	l.Start(ctx)
}
