package resource

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Loads(t *testing.T) {
	c := NewController(Config{MaxConcurrentLoads: 1})
	require.NoError(t, c.AcquireLoad(t.Context()))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireLoad(ctx), context.DeadlineExceeded)

	c.ReleaseLoad()
	require.NoError(t, c.AcquireLoad(t.Context()))
}

func TestController_DefaultLoads(t *testing.T) {
	c := NewController(Config{})
	require.NoError(t, c.AcquireLoad(t.Context()))
	require.NoError(t, c.AcquireLoad(t.Context()))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireLoad(ctx), context.DeadlineExceeded)
}

func TestController_IO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1000})
	assert.NoError(t, c.AcquireIO(t.Context(), 100))

	// Bucket is nearly empty now.
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireIO(ctx, 1000))

	unlimited := NewController(Config{})
	assert.NoError(t, unlimited.AcquireIO(t.Context(), 1<<30))
}

func TestController_NilChecks(t *testing.T) {
	var c *Controller
	assert.NoError(t, c.AcquireLoad(t.Context()))
	c.ReleaseLoad()
	assert.NoError(t, c.AcquireIO(t.Context(), 10))
}

func TestRateLimitedReader(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 3000)

	t.Run("unlimited", func(t *testing.T) {
		got, err := io.ReadAll(NewRateLimitedReader(t.Context(), bytes.NewReader(data), nil))
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("reads larger than burst", func(t *testing.T) {
		c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
		buf := make([]byte, 4<<20)
		n, err := NewRateLimitedReader(t.Context(), bytes.NewReader(data), c).Read(buf)
		require.NoError(t, err)
		assert.Equal(t, len(data), n)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := NewRateLimitedReader(ctx, bytes.NewReader(data), nil).Read(make([]byte, 10))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("throttled", func(t *testing.T) {
		c := NewController(Config{IOLimitBytesPerSec: 1000})
		ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
		defer cancel()
		// The first second of budget is available immediately, the rest is not.
		_, err := io.ReadAll(NewRateLimitedReader(ctx, bytes.NewReader(data), c))
		assert.Error(t, err)
	})
}
