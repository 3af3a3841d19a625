package vc

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracedEngine decorates an Engine with OpenTelemetry spans around the
// signing and verification calls. These are the blocking external-call
// boundaries of the credential path, so they get spans; everything else in
// this package is in-process and cheap.
type TracedEngine struct {
	inner  Engine
	tracer trace.Tracer
}

// NewTracedEngine wraps the engine using the global tracer provider under
// the "vcgate/vc" instrumentation name.
func NewTracedEngine(inner Engine) *TracedEngine {
	return &TracedEngine{
		inner:  inner,
		tracer: otel.Tracer("vcgate/vc"),
	}
}

func (t *TracedEngine) IssuerDID() string {
	return t.inner.IssuerDID()
}

func (t *TracedEngine) SignCredential(ctx context.Context, claims *CredentialClaims) (string, error) {
	ctx, span := t.tracer.Start(ctx, "vc.SignCredential",
		trace.WithAttributes(attribute.String("vc.issuer", t.inner.IssuerDID())))
	token, err := t.inner.SignCredential(ctx, claims)
	endSpan(span, err)
	return token, err
}

func (t *TracedEngine) VerifyCredential(ctx context.Context, token string) (*CredentialClaims, error) {
	ctx, span := t.tracer.Start(ctx, "vc.VerifyCredential")
	claims, err := t.inner.VerifyCredential(ctx, token)
	if err != nil {
		span.SetAttributes(attribute.String("vc.failure_kind", string(KindOf(err))))
	}
	endSpan(span, err)
	return claims, err
}

func (t *TracedEngine) SignPresentation(ctx context.Context, claims *PresentationClaims) (string, error) {
	ctx, span := t.tracer.Start(ctx, "vc.SignPresentation")
	token, err := t.inner.SignPresentation(ctx, claims)
	endSpan(span, err)
	return token, err
}

func (t *TracedEngine) VerifyPresentation(ctx context.Context, token string) (*PresentationClaims, error) {
	ctx, span := t.tracer.Start(ctx, "vc.VerifyPresentation")
	claims, err := t.inner.VerifyPresentation(ctx, token)
	endSpan(span, err)
	return claims, err
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
