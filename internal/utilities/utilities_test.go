package utilities_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := utilities.NewLogger(buffer)
	err := logger.Configure(map[string]string{"LOG_LEVEL": "info"})
	assert.Nil(t, err)

	ctx := internal.CtxWithCorrelationId(context.TODO(), "seed_run")
	logger.Info(ctx, "created: %s", "Rajesh Kumar")
	logger.Debug(ctx, "not printed")
	assert.Contains(t, buffer.String(), "[info] (seed_run) created: Rajesh Kumar")
	assert.NotContains(t, buffer.String(), "not printed")

	buffer.Reset()
	logger.Error(context.TODO(), "failed: %d", 500)
	assert.Contains(t, buffer.String(), "[error] failed: 500")
}

func TestCounter(t *testing.T) {
	counter := utilities.NewCounter()

	successes, failures := counter.Read("goals")
	assert.Equal(t, 0, successes)
	assert.Equal(t, 0, failures)
	assert.Equal(t, 1, counter.IncrementSuccess("goals"))
	assert.Equal(t, 2, counter.IncrementSuccess("goals"))
	assert.Equal(t, 1, counter.IncrementFailure("goals"))
	assert.Equal(t, 1, counter.IncrementFailure("reviews"))
	successes, failures = counter.Read("goals")
	assert.Equal(t, 2, successes)
	assert.Equal(t, 1, failures)

	counters := counter.ReadAll()
	assert.Equal(t, 2, counters.Successes["goals"])
	assert.Equal(t, 0, counters.Successes["reviews"])
	assert.Equal(t, 1, counters.Failures["reviews"])

	counter.Reset()
	assert.Empty(t, counter.ReadAll().Successes)
}

func TestTimers(t *testing.T) {
	timers := utilities.NewTimers()

	assert.Equal(t, int64(-1), timers.Stop("employees", 0))
	first := timers.Start("employees")
	second := timers.Start("employees")
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.GreaterOrEqual(t, timers.Stop("employees", first), int64(0))
	assert.Equal(t, int64(-1), timers.Stop("employees", 2))

	//the second timer was never stopped, so it's left out of the average
	read := timers.ReadAll()
	assert.Equal(t, read.Totals["employees"], read.Averages["employees"])

	timers.Start("goals")
	read = timers.ReadAll()
	assert.Equal(t, int64(0), read.Averages["goals"])

	timers.Clear()
	assert.Empty(t, timers.ReadAll().Totals)
}
