package orixdb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	assert.Equal(t, BasicMetricsStats{}, m.GetStats())

	m.RecordOpen(2*time.Millisecond, nil)
	m.RecordOpen(4*time.Millisecond, errors.New("x"))
	m.RecordIndexLoad("singletons", 10, time.Millisecond, nil)
	m.RecordIndexLoad("collections", 5, time.Millisecond, errors.New("x"))
	m.RecordCreate(time.Millisecond, nil)

	s := m.GetStats()
	assert.Equal(t, int64(2), s.OpenCount)
	assert.Equal(t, int64(1), s.OpenErrors)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), s.OpenAvgNanos)
	assert.Equal(t, int64(2), s.IndexLoads)
	assert.Equal(t, int64(1), s.IndexLoadErrors)
	assert.Equal(t, int64(10), s.IndexEntries)
	assert.Equal(t, int64(1), s.CreateCount)
	assert.Zero(t, s.CreateErrors)

	var _ MetricsCollector = NoopMetricsCollector{}
}
