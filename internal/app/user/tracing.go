package user

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appcommon "usersvc/internal/app/common"
)

var _ Service = (*tracingService)(nil)

type tracingService struct {
	tracer trace.Tracer
	svc    Service
}

// NewTracingService wraps svc so that every call runs in its own span.
func NewTracingService(svc Service, tracer trace.Tracer) Service {
	return &tracingService{tracer: tracer, svc: svc}
}

func (ts *tracingService) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	ctx, span := ts.tracer.Start(ctx, "svc_create_user")
	defer span.End()

	u, err := ts.svc.Create(ctx, input)
	if err == nil {
		span.SetAttributes(attribute.Int64("id", u.ID))
	}
	return u, record(span, err)
}

func (ts *tracingService) Get(ctx context.Context, id int64) (*User, error) {
	ctx, span := ts.tracer.Start(ctx, "svc_get_user", trace.WithAttributes(attribute.Int64("id", id)))
	defer span.End()

	u, err := ts.svc.Get(ctx, id)
	return u, record(span, err)
}

func (ts *tracingService) GetAll(ctx context.Context, input ListUsersInput) ([]User, error) {
	ctx, span := ts.tracer.Start(ctx, "svc_list_users", trace.WithAttributes(
		attribute.Int("page", input.Page),
		attribute.Int("limit", input.Limit),
	))
	defer span.End()

	users, err := ts.svc.GetAll(ctx, input)
	if err == nil {
		span.SetAttributes(attribute.Int("count", len(users)))
	}
	return users, record(span, err)
}

func (ts *tracingService) Update(ctx context.Context, id int64, input UpdateUserInput) (*User, error) {
	ctx, span := ts.tracer.Start(ctx, "svc_update_user", trace.WithAttributes(attribute.Int64("id", id)))
	defer span.End()

	u, err := ts.svc.Update(ctx, id, input)
	return u, record(span, err)
}

func (ts *tracingService) Delete(ctx context.Context, id int64) error {
	ctx, span := ts.tracer.Start(ctx, "svc_delete_user", trace.WithAttributes(attribute.Int64("id", id)))
	defer span.End()

	return record(span, ts.svc.Delete(ctx, id))
}

// record marks the span as failed for storage errors only; a missing user is
// an expected outcome and is just tagged.
func record(span trace.Span, err error) error {
	if err == nil {
		return nil
	}
	kind := appcommon.KindOf(err)
	span.SetAttributes(attribute.String("error.kind", kind.String()))
	if kind != appcommon.KindNotFound {
		span.RecordError(err)
		span.SetStatus(codes.Error, appcommon.PublicMessage(err))
	}
	return err
}
