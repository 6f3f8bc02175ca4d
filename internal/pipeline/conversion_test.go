package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/aircraft-registry-etl/internal/adapter/etcfile"
	"github.com/couchcryptid/aircraft-registry-etl/internal/adapter/faa"
	"github.com/couchcryptid/aircraft-registry-etl/internal/observability"
	"github.com/couchcryptid/aircraft-registry-etl/internal/pipeline"
)

// Fixtures shaped like the real distribution: BOM, padded fields, columns
// the converter ignores, and a trailing empty column on every row.
const (
	fixtureReference = "\uFEFF" +
		"CODE,MFR,MODEL,TYPE-ACFT,NO-ENG,\n" +
		"2072501,CESSNA                        ,172S                ,4,1,\n" +
		"6570233,ROBINSON HELICOPTER           ,R44 II              ,6,1,\n"

	fixtureRoster = "\uFEFF" +
		"N-NUMBER,SERIAL NUMBER,MFR MDL CODE,YEAR MFR,TYPE REGISTRANT,NAME,CITY,STATE,MODE S CODE HEX,\n" +
		"12345,172S0001,2072501,1998,1,JOHN SMITH                ,AUSTIN            ,TX,A0B1C2    ,\n" +
		"98712,0412   ,9999999,2005,7,SKYLINE AVIATION LLC      ,RENO              ,NV,A9F00D    ,\n" +
		"777  ,0007   ,6570233,    , ,STATE OF MONTANA          ,HELENA            ,MT,          ,\n"
)

func TestConversion_LocalTablesToLookupFile(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ACFTREF.txt")
	regPath := filepath.Join(dir, "MASTER.txt")
	outPath := filepath.Join(dir, "aircraft.etc")
	require.NoError(t, os.WriteFile(refPath, []byte(fixtureReference), 0o600))
	require.NoError(t, os.WriteFile(regPath, []byte(fixtureRoster), 0o600))

	metrics := observability.NewMetrics()
	p := pipeline.New(
		faa.NewLocalSource(refPath, regPath, discardLogger()),
		etcfile.NewWriter(outPath, discardLogger()),
		discardLogger(),
		metrics,
		clockwork.NewFakeClock(),
	)
	require.NoError(t, p.Run(context.Background()))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)

	want := "tail_number|make|model|year|owner_name|city|state|mode_s_hex|registrant_type\n" +
		"12345|CESSNA|172S|1998|JOHN SMITH|AUSTIN|TX|A0B1C2|Individual\n" +
		"98712|Unknown|Unknown|2005|SKYLINE AVIATION LLC|RENO|NV|A9F00D|LLC\n" +
		"777|ROBINSON HELICOPTER|R44 II||STATE OF MONTANA|HELENA|MT||Unknown\n"
	assert.Equal(t, want, string(got))

	summary := metrics.Summary()
	assert.Equal(t, float64(3), summary["faa2etc_records_written_total"])
	assert.Equal(t, float64(1), summary["faa2etc_unknown_model_codes_total"])
	assert.Equal(t, float64(1), summary["faa2etc_unknown_registrant_types_total"])
}

func TestConversion_RepeatRunsAreByteIdentical(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ACFTREF.txt")
	regPath := filepath.Join(dir, "MASTER.txt")
	outPath := filepath.Join(dir, "aircraft.etc")
	require.NoError(t, os.WriteFile(refPath, []byte(fixtureReference), 0o600))
	require.NoError(t, os.WriteFile(regPath, []byte(fixtureRoster), 0o600))

	run := func() []byte {
		p := pipeline.New(
			faa.NewLocalSource(refPath, regPath, discardLogger()),
			etcfile.NewWriter(outPath, discardLogger()),
			discardLogger(),
			observability.NewMetrics(),
			clockwork.NewFakeClock(),
		)
		require.NoError(t, p.Run(context.Background()))
		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run(), run())
}

func TestConversion_EmptyRosterWritesHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ACFTREF.txt")
	regPath := filepath.Join(dir, "MASTER.txt")
	outPath := filepath.Join(dir, "aircraft.etc")
	require.NoError(t, os.WriteFile(refPath, []byte("CODE,MFR,MODEL\n"), 0o600))
	require.NoError(t, os.WriteFile(regPath, []byte(
		"N-NUMBER,MFR MDL CODE,YEAR MFR,NAME,CITY,STATE,MODE S CODE HEX,TYPE REGISTRANT\n"), 0o600))

	p := pipeline.New(
		faa.NewLocalSource(refPath, regPath, discardLogger()),
		etcfile.NewWriter(outPath, discardLogger()),
		discardLogger(),
		observability.NewMetrics(),
		clockwork.NewFakeClock(),
	)
	require.NoError(t, p.Run(context.Background()))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "tail_number|make|model|year|owner_name|city|state|mode_s_hex|registrant_type\n", string(got))
}

func TestConversion_ParseFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ACFTREF.txt")
	regPath := filepath.Join(dir, "MASTER.txt")
	outPath := filepath.Join(dir, "aircraft.etc")
	require.NoError(t, os.WriteFile(refPath, []byte("CODE,MFR\n"), 0o600)) // MODEL column missing
	require.NoError(t, os.WriteFile(regPath, []byte(fixtureRoster), 0o600))

	p := pipeline.New(
		faa.NewLocalSource(refPath, regPath, discardLogger()),
		etcfile.NewWriter(outPath, discardLogger()),
		discardLogger(),
		observability.NewMetrics(),
		clockwork.NewFakeClock(),
	)
	err := p.Run(context.Background())

	var parseErr *faa.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NoFileExists(t, outPath)
}
