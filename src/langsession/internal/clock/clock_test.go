package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleep(t *testing.T) {
	c := New()
	start := c.Now()
	c.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, c.Since(start), 5*time.Millisecond)
}

func TestAfterFunc(t *testing.T) {
	c := New()

	t.Run("fires", func(t *testing.T) {
		fired := make(chan struct{})
		c.AfterFunc(time.Millisecond, func() { close(fired) })
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("timer did not fire")
		}
	})

	t.Run("stopped", func(t *testing.T) {
		timer := c.AfterFunc(time.Hour, func() { t.Error("stopped timer fired") })
		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())
	})
}
