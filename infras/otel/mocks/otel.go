package mocks

import (
	"context"

	"lodge/infras/otel"
)

type otelImpl struct {
}

// NewScope implements otel.Otel.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}

type recordingOtelImpl struct {
	log *TraceLog
}

// NewScope implements otel.Otel.
func (o *recordingOtelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, &recordingScope{log: o.log}
}

func NewRecordingOtel() (otel.Otel, *TraceLog) {
	log := &TraceLog{}

	return &recordingOtelImpl{log: log}, log
}
