package mocks

import (
	"sync"

	"lodge/infras/otel"
)

type scopeImpl struct {
}

// AddEvent implements otel.Scope.
func (s *scopeImpl) AddEvent(_ string) {

}

// End implements otel.Scope.
func (s *scopeImpl) End() {

}

// SetAttribute implements otel.Scope.
func (s *scopeImpl) SetAttribute(_ string, _ any) {

}

// SetAttributes implements otel.Scope.
func (s *scopeImpl) SetAttributes(_ map[string]any) {

}

// TraceError implements otel.Scope.
func (s *scopeImpl) TraceError(_ error) {

}

// TraceIfError implements otel.Scope.
func (s *scopeImpl) TraceIfError(_ error) {

}

func NewScope() otel.Scope {
	return &scopeImpl{}
}

// TraceLog collects errors recorded on scopes, so tests can assert a failure
// actually reached the span.
type TraceLog struct {
	mu   sync.Mutex
	errs []error
}

func (l *TraceLog) append(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.errs = append(l.errs, err)
}

func (l *TraceLog) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]error{}, l.errs...)
}

type recordingScope struct {
	scopeImpl

	log *TraceLog
}

func (s *recordingScope) TraceError(err error) {
	s.log.append(err)
}

func (s *recordingScope) TraceIfError(err error) {
	if err != nil {
		s.log.append(err)
	}
}
