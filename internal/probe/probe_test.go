package probe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/Modulo/internal/telemetry"
)

type fakePinger struct {
	err   error
	calls atomic.Int32
}

func (p *fakePinger) Ping(context.Context) error {
	p.calls.Add(1)
	return p.err
}

type fixedCounter int

func (c fixedCounter) Count(context.Context) (int, error) { return int(c), nil }

type brokenCounter struct{}

func (brokenCounter) Count(context.Context) (int, error) { return 0, errors.New("boom") }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnce_Healthy(t *testing.T) {
	p := New(Config{
		DB: &fakePinger{},
		Counters: map[string]Counter{
			"probe_echo":    fixedCounter(3),
			"probe_contact": fixedCounter(7),
			"probe_broken":  brokenCounter{},
		},
		Logger: quietLogger(),
	})

	p.RunOnce(context.Background())

	assert.Equal(t, float64(1), testutil.ToFloat64(telemetry.DatabaseUp))
	assert.Equal(t, float64(3), testutil.ToFloat64(telemetry.LiveEntities.WithLabelValues("probe_echo")))
	assert.Equal(t, float64(7), testutil.ToFloat64(telemetry.LiveEntities.WithLabelValues("probe_contact")))
}

func TestRunOnce_DatabaseDown(t *testing.T) {
	p := New(Config{
		DB:       &fakePinger{err: errors.New("connection refused")},
		Counters: map[string]Counter{"probe_down": fixedCounter(1)},
		Logger:   quietLogger(),
	})

	p.RunOnce(context.Background())

	assert.Equal(t, float64(0), testutil.ToFloat64(telemetry.DatabaseUp))
}

func TestStart_InvalidSchedule(t *testing.T) {
	p := New(Config{DB: &fakePinger{}, Logger: quietLogger()})

	err := p.Start("not a schedule")
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	pinger := &fakePinger{}
	p := New(Config{DB: pinger, Logger: quietLogger()})

	require.NoError(t, p.Start("@every 1s"))

	assert.Eventually(t, func() bool {
		return pinger.calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, p.Stop(ctx))
}
