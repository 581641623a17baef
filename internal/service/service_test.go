package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/Modulo/internal/apperr"
	"github.com/shaiso/Modulo/internal/mq"
	"github.com/shaiso/Modulo/internal/pagination"
	"github.com/shaiso/Modulo/internal/repo/sqlite"
	"github.com/shaiso/Modulo/internal/telemetry"
)

// recorder запоминает опубликованные события.
type recorder struct {
	mu     sync.Mutex
	events []mq.EntityEvent
	err    error
}

func (r *recorder) PublishEntityEvent(_ context.Context, ev mq.EntityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) keys() []mq.RoutingKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mq.RoutingKey, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.RoutingKey())
	}
	return out
}

// clock выдаёт время с шагом в одну секунду.
func clock() func() time.Time {
	var (
		mu  sync.Mutex
		cur = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}

type fixture struct {
	echo    *EchoService
	contact *ContactService
	events  *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.Open(":memory:", slog.LevelError)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	events := &recorder{}
	opts := Options{
		QueryTimeout: 5 * time.Second,
		Publisher:    events,
		Now:          clock(),
	}

	return &fixture{
		echo:    NewEchoService(sqlite.NewEchoStore(db), opts),
		contact: NewContactService(sqlite.NewContactStore(db), opts),
		events:  events,
	}
}

func ptr(s string) *string { return &s }

func TestEchoService_CreateComputesDerivedFields(t *testing.T) {
	f := newFixture(t)

	e, err := f.echo.Create(context.Background(), EchoInput{Message: "hello"}, false)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, "olleh", e.ProcessedMessage)
	assert.False(t, e.IsProtected)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
	assert.Nil(t, e.DeletedAt)

	assert.Equal(t, []mq.RoutingKey{"echo.created"}, f.events.keys())
}

func TestEchoService_EventCarriesRequestID(t *testing.T) {
	f := newFixture(t)
	ctx := telemetry.WithRequestID(context.Background(), "req-42")

	e, err := f.echo.Create(ctx, EchoInput{Message: "hello"}, false)
	require.NoError(t, err)
	_, err = f.echo.Delete(context.Background(), e.ID)
	require.NoError(t, err)

	f.events.mu.Lock()
	defer f.events.mu.Unlock()
	require.Len(t, f.events.events, 2)
	assert.Equal(t, "req-42", f.events.events[0].RequestID)
	assert.Equal(t, e.ID, f.events.events[0].EntityID)
	assert.Empty(t, f.events.events[1].RequestID)
}

func TestEchoService_CategoryCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.echo.Create(ctx, EchoInput{Message: "hi", Category: ptr("GENERAL")}, true)
	require.NoError(t, err)
	require.NotNil(t, e.Category)
	assert.Equal(t, "GENERAL", *e.Category)
	assert.True(t, e.IsProtected)
}

func TestEchoService_BogusCategoryPersistsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.echo.Create(ctx, EchoInput{Message: "hi", Category: ptr("bogus")}, false)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "category")

	n, err := f.echo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.events.keys())
}

func TestEchoService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name  string
		in    EchoInput
		field string
	}{
		{"empty message", EchoInput{Message: ""}, "message"},
		{"too long message", EchoInput{Message: string(long)}, "message"},
		{"too long category", EchoInput{Message: "x", Category: ptr(string(long[:101]))}, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.echo.Create(context.Background(), tt.in, false)
			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, apperr.KindValidation, ae.Kind)
			assert.Contains(t, ae.Fields, tt.field)
		})
	}
}

func TestEchoService_ListAfterDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, m := range []string{"one", "two", "three"} {
		e, err := f.echo.Create(ctx, EchoInput{Message: m}, false)
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	_, err := f.echo.Delete(ctx, ids[1])
	require.NoError(t, err)

	p, err := pagination.New(1, 2)
	require.NoError(t, err)

	items, total, err := f.echo.List(ctx, p)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, p.Pages(total))
	assert.Equal(t, ids[0], items[0].ID)
	assert.Equal(t, ids[2], items[1].ID)
}

func TestEchoService_DeleteTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.echo.Create(ctx, EchoInput{Message: "bye"}, false)
	require.NoError(t, err)

	deleted, err := f.echo.Delete(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted.DeletedAt)
	assert.True(t, deleted.CreatedAt.Equal(e.CreatedAt))
	assert.False(t, deleted.DeletedAt.Before(deleted.CreatedAt))

	_, err = f.echo.Get(ctx, e.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.echo.Delete(ctx, e.ID)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindNotFound, ae.Kind)
	assert.Equal(t, "Echo not found", ae.Message)

	assert.Equal(t, []mq.RoutingKey{"echo.created", "echo.deleted"}, f.events.keys())
}

func TestEchoService_ListRejectsBadParams(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.echo.List(context.Background(), pagination.Params{Page: 0, PageSize: 10})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestEchoService_Process(t *testing.T) {
	f := newFixture(t)

	res, err := f.echo.Process(ProcessInput{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Original)
	assert.Equal(t, "olleh", res.Processed)
	assert.Equal(t, 5, res.Length)
	assert.Equal(t, 5, res.ProcessedLength)

	_, err = f.echo.Process(ProcessInput{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	n, err := f.echo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEchoService_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")

	before := testutil.ToFloat64(telemetry.EventPublishFailures)

	e, err := f.echo.Create(context.Background(), EchoInput{Message: "still saved"}, false)
	require.NoError(t, err)

	got, err := f.echo.Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "still saved", got.Message)

	assert.Equal(t, before+1, testutil.ToFloat64(telemetry.EventPublishFailures))
}

func TestContactService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.contact.Create(ctx, ContactInput{Phone: " +1 (555) 010-0100 ", Name: " Alice "})
	require.NoError(t, err)
	assert.Equal(t, "Alice", c.Name)
	assert.Equal(t, "+1 (555) 010-0100", c.Phone)

	got, err := f.contact.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	items, total, err := f.contact.List(ctx, pagination.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)

	_, err = f.contact.Delete(ctx, c.ID)
	require.NoError(t, err)

	_, err = f.contact.Delete(ctx, c.ID)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Contact not found", ae.Message)

	assert.Equal(t, []mq.RoutingKey{"contact.created", "contact.deleted"}, f.events.keys())
}

func TestContactService_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		in    ContactInput
		field string
	}{
		{"missing phone", ContactInput{Name: "Bob"}, "phone"},
		{"letters in phone", ContactInput{Phone: "call me", Name: "Bob"}, "phone"},
		{"missing name", ContactInput{Phone: "+15550100"}, "name"},
		{"blank name", ContactInput{Phone: "+15550100", Name: "   "}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.contact.Create(context.Background(), tt.in)
			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, apperr.KindValidation, ae.Kind)
			assert.Contains(t, ae.Fields, tt.field)
		})
	}
}

func TestService_GetUnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.echo.Get(context.Background(), uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.contact.Get(context.Background(), uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
