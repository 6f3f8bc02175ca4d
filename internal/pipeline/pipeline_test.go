package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/aircraft-registry-etl/internal/domain"
	"github.com/couchcryptid/aircraft-registry-etl/internal/observability"
	"github.com/couchcryptid/aircraft-registry-etl/internal/pipeline"
)

// --- mocks ---

type mockExtractor struct {
	tables    domain.RegistryTables
	err       error
	onExtract func()
}

func (m *mockExtractor) Extract(_ context.Context) (domain.RegistryTables, error) {
	if m.onExtract != nil {
		m.onExtract()
	}
	if m.err != nil {
		return domain.RegistryTables{}, m.err
	}
	return m.tables, nil
}

type mockSink struct {
	opened    bool
	wrote     []domain.OutputRecord
	commits   int
	aborts    int
	openErr   error
	writeErr  error
	commitErr error
}

func (m *mockSink) Open(_ context.Context) error {
	if m.openErr != nil {
		return m.openErr
	}
	m.opened = true
	return nil
}

func (m *mockSink) Write(_ context.Context, rec domain.OutputRecord) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.wrote = append(m.wrote, rec)
	return nil
}

func (m *mockSink) Commit(_ context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.commits++
	return nil
}

func (m *mockSink) Abort() { m.aborts++ }

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	ext := &mockExtractor{tables: makeTables()}
	sink := &mockSink{}
	metrics := observability.NewMetrics()

	p := pipeline.New(ext, sink, discardLogger(), metrics, clockwork.NewFakeClock())
	require.NoError(t, p.Run(context.Background()))

	assert.True(t, sink.opened)
	require.Len(t, sink.wrote, 3)

	assert.Equal(t, domain.OutputRecord{
		TailNumber: "12345", Make: "CESSNA", Model: "172S", Year: "1998",
		OwnerName: "JOHN SMITH", City: "AUSTIN", State: "TX",
		ModeSHex: "A0B1C2", RegistrantType: "Individual",
	}, sink.wrote[0])

	// Unmatched model code joins to Unknown without dropping the row.
	assert.Equal(t, "Unknown", sink.wrote[1].Make)
	assert.Equal(t, "Unknown", sink.wrote[1].Model)
	assert.Equal(t, "98712", sink.wrote[1].TailNumber)

	assert.Equal(t, 1, sink.commits)
	assert.Equal(t, 1, sink.aborts) // deferred abort is a no-op after commit

	summary := metrics.Summary()
	assert.Equal(t, float64(3), summary["faa2etc_records_written_total"])
	assert.Equal(t, float64(1), summary["faa2etc_unknown_model_codes_total"])
	assert.Equal(t, float64(1), summary["faa2etc_unknown_registrant_types_total"])
	assert.Equal(t, float64(4), summary["faa2etc_records_parsed_total"]) // 1 reference + 3 registrations
}

func TestPipeline_Run_PreservesOrder(t *testing.T) {
	tables := makeTables()
	ext := &mockExtractor{tables: tables}
	sink := &mockSink{}

	p := pipeline.New(ext, sink, discardLogger(), observability.NewMetrics(), clockwork.NewFakeClock())
	require.NoError(t, p.Run(context.Background()))

	require.Len(t, sink.wrote, len(tables.Registrations))
	for i, reg := range tables.Registrations {
		assert.Equal(t, reg.TailNumber, sink.wrote[i].TailNumber)
	}
}

func TestPipeline_Run_ExtractError(t *testing.T) {
	ext := &mockExtractor{err: errors.New("registry unreachable")}
	sink := &mockSink{}

	p := pipeline.New(ext, sink, discardLogger(), observability.NewMetrics(), clockwork.NewFakeClock())
	err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire source tables")
	assert.False(t, sink.opened)
	assert.Zero(t, sink.aborts)
}

func TestPipeline_Run_OpenError(t *testing.T) {
	ext := &mockExtractor{tables: makeTables()}
	sink := &mockSink{openErr: errors.New("disk full")}

	p := pipeline.New(ext, sink, discardLogger(), observability.NewMetrics(), clockwork.NewFakeClock())
	err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open sink")
	assert.Zero(t, sink.commits)
}

func TestPipeline_Run_WriteError(t *testing.T) {
	ext := &mockExtractor{tables: makeTables()}
	sink := &mockSink{writeErr: errors.New("pipe closed")}

	p := pipeline.New(ext, sink, discardLogger(), observability.NewMetrics(), clockwork.NewFakeClock())
	err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write record")
	assert.Zero(t, sink.commits)
	assert.Equal(t, 1, sink.aborts)
}

func TestPipeline_Run_CommitError(t *testing.T) {
	ext := &mockExtractor{tables: makeTables()}
	sink := &mockSink{commitErr: errors.New("rename failed")}

	p := pipeline.New(ext, sink, discardLogger(), observability.NewMetrics(), clockwork.NewFakeClock())
	err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit output")
	assert.Equal(t, 1, sink.aborts)
}

func TestPipeline_Run_RecordsRunDuration(t *testing.T) {
	fc := clockwork.NewFakeClock()
	ext := &mockExtractor{
		tables:    makeTables(),
		onExtract: func() { fc.Advance(1500 * time.Millisecond) },
	}
	metrics := observability.NewMetrics()

	p := pipeline.New(ext, &mockSink{}, discardLogger(), metrics, fc)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 1.5, metrics.Summary()["faa2etc_run_duration_seconds"])
}

func TestMultiSink_FansOut(t *testing.T) {
	a, b := &mockSink{}, &mockSink{}
	ext := &mockExtractor{tables: makeTables()}

	p := pipeline.New(ext, pipeline.MultiSink(a, b), discardLogger(), observability.NewMetrics(), clockwork.NewFakeClock())
	require.NoError(t, p.Run(context.Background()))

	assert.Len(t, a.wrote, 3)
	assert.Len(t, b.wrote, 3)
	assert.Equal(t, 1, a.commits)
	assert.Equal(t, 1, b.commits)
}

func TestMultiSink_SingleSinkUnwrapped(t *testing.T) {
	s := &mockSink{}
	assert.Same(t, pipeline.Sink(s), pipeline.MultiSink(s))
}

func TestMultiSink_WriteErrorStopsFanOut(t *testing.T) {
	a := &mockSink{writeErr: errors.New("broken")}
	b := &mockSink{}
	ms := pipeline.MultiSink(a, b)

	require.NoError(t, ms.Open(context.Background()))
	err := ms.Write(context.Background(), domain.OutputRecord{TailNumber: "1"})
	require.Error(t, err)
	assert.Empty(t, b.wrote)

	ms.Abort()
	assert.Equal(t, 1, a.aborts)
	assert.Equal(t, 1, b.aborts)
}

// --- helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// makeTables builds a reference table plus three registrations: a matched
// code, an unmatched code, and a blank registrant type.
func makeTables() domain.RegistryTables {
	return domain.RegistryTables{
		Reference: domain.ReferenceTable{
			"2072501": {Make: "CESSNA", Model: "172S"},
		},
		Registrations: []domain.Registration{
			{
				TailNumber: "12345", ModelCode: "2072501", Year: "1998",
				OwnerName: "JOHN SMITH", City: "AUSTIN", State: "TX",
				ModeSHex: "A0B1C2", RegistrantType: "Individual",
			},
			{
				TailNumber: "98712", ModelCode: "9999999", Year: "2005",
				OwnerName: "SKYLINE AVIATION LLC", City: "RENO", State: "NV",
				ModeSHex: "A9F00D", RegistrantType: "LLC",
			},
			{
				TailNumber: "777", ModelCode: "2072501", Year: "",
				OwnerName: "STATE OF MONTANA", City: "HELENA", State: "MT",
				ModeSHex: "", RegistrantType: domain.Unknown,
			},
		},
	}
}
