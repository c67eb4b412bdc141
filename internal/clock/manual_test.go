package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/pipelinedeck/internal/clock"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManual_FiresInDeadlineOrder(t *testing.T) {
	c := clock.NewManual(epoch)
	var order []string
	c.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })

	fired := c.Advance(time.Second)

	assert.Equal(t, 3, fired)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestManual_SameDeadlineFiresInRegistrationOrder(t *testing.T) {
	c := clock.NewManual(epoch)
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		c.AfterFunc(500*time.Millisecond, func() { order = append(order, i) })
	}

	c.Advance(500 * time.Millisecond)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestManual_DoesNotFireBeforeDeadline(t *testing.T) {
	c := clock.NewManual(epoch)
	fired := false
	c.AfterFunc(time.Second, func() { fired = true })

	c.Advance(999 * time.Millisecond)
	assert.False(t, fired)

	c.Advance(time.Millisecond)
	assert.True(t, fired)
}

func TestManual_CallbackSeesDeadlineAsNow(t *testing.T) {
	c := clock.NewManual(epoch)
	var seen time.Time
	c.AfterFunc(250*time.Millisecond, func() { seen = c.Now() })

	c.Advance(time.Second)

	assert.Equal(t, epoch.Add(250*time.Millisecond), seen)
	assert.Equal(t, epoch.Add(time.Second), c.Now())
}

func TestManual_NestedTimersWithinWindowFire(t *testing.T) {
	c := clock.NewManual(epoch)
	var at []time.Duration
	c.AfterFunc(100*time.Millisecond, func() {
		at = append(at, c.Now().Sub(epoch))
		c.AfterFunc(200*time.Millisecond, func() {
			at = append(at, c.Now().Sub(epoch))
		})
	})

	c.Advance(time.Second)

	require.Len(t, at, 2)
	assert.Equal(t, 100*time.Millisecond, at[0])
	assert.Equal(t, 300*time.Millisecond, at[1])
}

func TestManual_StopPreventsCallback(t *testing.T) {
	c := clock.NewManual(epoch)
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	c.Advance(2 * time.Second)

	assert.False(t, fired)
	assert.Equal(t, 0, c.Pending())
}
