package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/aircraft-registry-etl/internal/domain"
	"github.com/couchcryptid/aircraft-registry-etl/internal/observability"
)

// Extractor obtains the two parsed source tables, whichever acquisition
// mode is behind it.
type Extractor interface {
	Extract(ctx context.Context) (domain.RegistryTables, error)
}

// Sink consumes merged output records. Open writes the header, Commit
// finalizes the destination, Abort discards partial output. Abort must be
// safe to call after Commit.
type Sink interface {
	Open(ctx context.Context) error
	Write(ctx context.Context, rec domain.OutputRecord) error
	Commit(ctx context.Context) error
	Abort()
}

// Pipeline runs one extract-merge-write conversion and exits.
type Pipeline struct {
	extractor Extractor
	sink      Sink
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, s Sink, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		extractor: e,
		sink:      s,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

// Run executes the conversion: acquire and parse the two tables, join each
// registration against the reference table in roster order, and stream the
// projection to the sink. One output row per registration, always. Any
// failure aborts the whole run; nothing is retried.
func (p *Pipeline) Run(ctx context.Context) error {
	start := p.clock.Now()

	tables, err := p.extractor.Extract(ctx)
	if err != nil {
		return fmt.Errorf("acquire source tables: %w", err)
	}
	p.metrics.RecordsParsed.WithLabelValues("reference").Add(float64(len(tables.Reference)))
	p.metrics.RecordsParsed.WithLabelValues("registration").Add(float64(len(tables.Registrations)))

	if err := p.sink.Open(ctx); err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	defer p.sink.Abort()

	for _, reg := range tables.Registrations {
		if _, ok := tables.Reference[reg.ModelCode]; !ok {
			p.metrics.UnknownModels.Inc()
		}
		if reg.RegistrantType == domain.Unknown {
			p.metrics.UnknownRegistrants.Inc()
		}

		if err := p.sink.Write(ctx, domain.Merge(reg, tables.Reference)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		p.metrics.RecordsWritten.Inc()
	}

	if err := p.sink.Commit(ctx); err != nil {
		return fmt.Errorf("commit output: %w", err)
	}

	elapsed := p.clock.Since(start)
	p.metrics.RunDuration.Set(elapsed.Seconds())
	p.logger.Info("conversion complete",
		"registrations", len(tables.Registrations),
		"model_codes", len(tables.Reference),
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)
	return nil
}
