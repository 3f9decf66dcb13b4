package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/metrics"
	"newsroom/internal/model"
)

type fakeEditions struct {
	days    []time.Time
	created bool
	err     error
}

func (f *fakeEditions) EnsureEdition(_ context.Context, day time.Time, name, publisher string) (*model.Paper, bool, error) {
	f.days = append(f.days, day)
	if f.err != nil {
		return nil, false, f.err
	}
	return &model.Paper{ID: 1, Date: day, NamePaper: name, NamePublisher: publisher}, f.created, nil
}

type fakeCounter struct {
	n   int64
	err error
}

func (f fakeCounter) Count(context.Context) (int64, error) { return f.n, f.err }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunEdition(t *testing.T) {
	editions := &fakeEditions{created: true}
	s, err := New(quietLogger(), Config{EditionName: "Daily", EditionPublisher: "Press"}, editions, fakeCounter{}, fakeCounter{})
	require.NoError(t, err)
	fixed := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	before := testutil.ToFloat64(metrics.EditionsCreated)
	s.runEdition()

	require.Len(t, editions.days, 1)
	assert.True(t, editions.days[0].Equal(fixed))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EditionsCreated))
}

func TestScheduler_RunEditionExisting(t *testing.T) {
	editions := &fakeEditions{}
	s, err := New(quietLogger(), Config{}, editions, fakeCounter{}, fakeCounter{})
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.EditionsCreated)
	s.runEdition()
	assert.Equal(t, before, testutil.ToFloat64(metrics.EditionsCreated))

	editions.err = errors.New("database down")
	assert.NotPanics(t, s.runEdition)
}

func TestScheduler_RunGauges(t *testing.T) {
	s, err := New(quietLogger(), Config{}, &fakeEditions{}, fakeCounter{n: 12}, fakeCounter{n: 4})
	require.NoError(t, err)

	s.runGauges()
	assert.Equal(t, float64(12), testutil.ToFloat64(metrics.ArticlesTotal))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.UsersTotal))

	// A failing count keeps the previous value.
	s.articles = fakeCounter{err: errors.New("timeout")}
	s.runGauges()
	assert.Equal(t, float64(12), testutil.ToFloat64(metrics.ArticlesTotal))
}

func TestScheduler_StartStop(t *testing.T) {
	editions := &fakeEditions{}
	s, err := New(quietLogger(), Config{}, editions, fakeCounter{}, fakeCounter{})
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)

	assert.Len(t, editions.days, 1)
	assert.Len(t, s.cron.Entries(), 2)
}
