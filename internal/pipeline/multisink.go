package pipeline

import (
	"context"

	"github.com/couchcryptid/aircraft-registry-etl/internal/domain"
)

// MultiSink fans records out to several sinks: the lookup file plus an
// optional publisher. Returns the sole sink unwrapped when only one is
// given.
func MultiSink(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return &multiSink{sinks: sinks}
}

type multiSink struct {
	sinks []Sink
}

func (m *multiSink) Open(ctx context.Context) error {
	for _, s := range m.sinks {
		if err := s.Open(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiSink) Write(ctx context.Context, rec domain.OutputRecord) error {
	for _, s := range m.sinks {
		if err := s.Write(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiSink) Commit(ctx context.Context) error {
	for _, s := range m.sinks {
		if err := s.Commit(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiSink) Abort() {
	for _, s := range m.sinks {
		s.Abort()
	}
}
