package sim_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/waabox/pipelinedeck/internal/clock"
	"github.com/waabox/pipelinedeck/internal/domain"
	"github.com/waabox/pipelinedeck/internal/store"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// sequenceRand returns values in order, then repeats the last one.
func sequenceRand(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func never() float64 { return 0 }

func newCounters(t *testing.T, initial domain.Counters) (*store.CounterStore, store.KV) {
	t.Helper()
	kv := store.NewMemoryKV()
	s := store.NewCounterStore(kv, nil)
	require.NoError(t, s.Save(context.Background(), initial))
	return s, kv
}

// recordingNotifier counts completion messages.
type recordingNotifier struct {
	messages []string
	at       []time.Time
	clock    *clock.Manual
}

func (r *recordingNotifier) Show(message string) domain.Notification {
	r.messages = append(r.messages, message)
	r.at = append(r.at, r.clock.Now())
	return domain.Notification{Message: message, State: domain.NotificationVisible}
}
