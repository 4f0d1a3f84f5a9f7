package backend

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
)

// tracerName identifies this instrumentation scope.
const tracerName = "github.com/pulsefeed/pulsecli/internal/backend"

// TracedClient decorates a Client with OpenTelemetry spans. Each call gets
// a span; failures are recorded with their normalized taxonomy kind so
// traces can be filtered the same way the UI classifies errors.
type TracedClient struct {
	inner  Client
	tracer trace.Tracer
}

// Verify interface compliance.
var _ Client = (*TracedClient)(nil)

// NewTraced wraps a Client with tracing.
func NewTraced(inner Client) *TracedClient {
	return &TracedClient{
		inner:  inner,
		tracer: otel.Tracer(tracerName),
	}
}

// finish records the call outcome on the span and ends it.
func finish(span trace.Span, err error) {
	if err != nil {
		e := apperrors.Normalize(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, e.Message)
		span.SetAttributes(
			attribute.String("error.kind", string(e.Kind)),
			attribute.Bool("error.retryable", e.IsRetryable()),
		)
	}
	span.End()
}

// FetchProfile traces the profile fetch.
func (t *TracedClient) FetchProfile(ctx context.Context) (Profile, error) {
	ctx, span := t.tracer.Start(ctx, "backend.FetchProfile")
	profile, err := t.inner.FetchProfile(ctx)
	finish(span, err)
	return profile, err
}

// FetchTimeline traces the timeline fetch.
func (t *TracedClient) FetchTimeline(ctx context.Context, limit int) ([]Post, error) {
	ctx, span := t.tracer.Start(ctx, "backend.FetchTimeline",
		trace.WithAttributes(attribute.Int("limit", limit)))
	posts, err := t.inner.FetchTimeline(ctx, limit)
	finish(span, err)
	return posts, err
}

// CreatePost traces the post creation.
func (t *TracedClient) CreatePost(ctx context.Context, content, mediaURL string) (Post, error) {
	ctx, span := t.tracer.Start(ctx, "backend.CreatePost",
		trace.WithAttributes(attribute.Int("content_length", len(content))))
	post, err := t.inner.CreatePost(ctx, content, mediaURL)
	finish(span, err)
	return post, err
}

// UploadMedia traces the media upload.
func (t *TracedClient) UploadMedia(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	ctx, span := t.tracer.Start(ctx, "backend.UploadMedia",
		trace.WithAttributes(
			attribute.String("media.mime_type", mimeType),
			attribute.Int("media.size_bytes", len(data)),
		))
	url, err := t.inner.UploadMedia(ctx, name, mimeType, data)
	finish(span, err)
	return url, err
}
