package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownFiresOnce(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tm := &Timer{Seconds: 3}
	tm.OpenForm()
	require.False(t, tm.Start(t0))
	assert.True(t, tm.Running)
	assert.False(t, tm.FormOpen)

	fired := 0
	for i := 1; i <= 3; i++ {
		if tm.Tick(t0.Add(time.Duration(i) * time.Second)) {
			fired++
		}
	}
	assert.Equal(t, 1, fired)
	assert.False(t, tm.Running)
	assert.Equal(t, uint32(0), tm.Seconds)

	assert.False(t, tm.Tick(t0.Add(10*time.Second)))
}

func TestTickIgnoresSubSecondFrames(t *testing.T) {
	t0 := time.Unix(100, 0)
	tm := &Timer{Seconds: 2}
	tm.Start(t0)
	for i := 1; i < 10; i++ {
		assert.False(t, tm.Tick(t0.Add(time.Duration(i)*100*time.Millisecond)))
	}
	assert.Equal(t, uint32(2), tm.Seconds)
	assert.False(t, tm.Tick(t0.Add(time.Second)))
	assert.Equal(t, uint32(1), tm.Seconds)
}

func TestStartWithZeroCapturesImmediately(t *testing.T) {
	tm := &Timer{FormOpen: true}
	assert.True(t, tm.Start(time.Now()))
	assert.False(t, tm.Running)
	assert.False(t, tm.FormOpen)
}

func TestCancelIsIdempotent(t *testing.T) {
	tm := &Timer{Seconds: 5, FormOpen: true}
	tm.Start(time.Now())
	tm.Cancel()
	first := *tm
	tm.Cancel()
	assert.Equal(t, first, *tm)
	assert.Equal(t, Timer{}, *tm)
}
