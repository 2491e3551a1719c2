package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"usersvc/internal/db"
	"usersvc/internal/logging"
)

func newTracedService(t *testing.T) (Service, *tracetest.SpanRecorder, *memRepo) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	repo := newMemRepo()
	svc := NewService(repo, newFakeCache(), db.NoopTransactor{}, NoopEvents{}, logging.Nop())
	return NewTracingService(svc, tp.Tracer("users")), recorder, repo
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingServiceSpans(t *testing.T) {
	svc, recorder, _ := newTracedService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Name: "John", LastName: "Doe", Rut: "12345678-9", Address: "Some address"})
	require.NoError(t, err)
	_, err = svc.Get(ctx, u.ID)
	require.NoError(t, err)
	_, err = svc.GetAll(ctx, ListUsersInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	_, err = svc.Update(ctx, u.ID, UpdateUserInput{Name: strPtr("Jane")})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, u.ID))

	spans := recorder.Ended()
	require.Len(t, spans, 5)

	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name())
		assert.NotEqual(t, codes.Error, s.Status().Code)
	}
	assert.Equal(t, []string{"svc_create_user", "svc_get_user", "svc_list_users", "svc_update_user", "svc_delete_user"}, names)

	id, ok := attr(spans[1].Attributes(), "id")
	require.True(t, ok)
	assert.Equal(t, u.ID, id.AsInt64())

	count, ok := attr(spans[2].Attributes(), "count")
	require.True(t, ok)
	assert.Equal(t, int64(1), count.AsInt64())
}

func TestTracingServiceNotFoundIsNotAnError(t *testing.T) {
	svc, recorder, _ := newTracedService(t)

	_, err := svc.Get(context.Background(), 404)
	assertNotFound(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	kind, ok := attr(spans[0].Attributes(), "error.kind")
	require.True(t, ok)
	assert.Equal(t, "not_found", kind.AsString())
}
