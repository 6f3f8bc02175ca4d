package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/aircraft-registry-etl/internal/adapter/etcfile"
	"github.com/couchcryptid/aircraft-registry-etl/internal/adapter/faa"
	kafkaadapter "github.com/couchcryptid/aircraft-registry-etl/internal/adapter/kafka"
	"github.com/couchcryptid/aircraft-registry-etl/internal/config"
	"github.com/couchcryptid/aircraft-registry-etl/internal/observability"
	"github.com/couchcryptid/aircraft-registry-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		url          = flag.String("url", cfg.DatabaseURL, "registry database archive URL")
		acftrefPath  = flag.String("acftref", "", "local ACFTREF.txt path; with -master, skips the download")
		masterPath   = flag.String("master", "", "local MASTER.txt path; with -acftref, skips the download")
		timeout      = flag.Duration("timeout", cfg.HTTPTimeout, "download timeout")
		publish      = flag.Bool("publish", false, "also publish converted records to Kafka")
		publishTopic = flag.String("publish-topic", cfg.KafkaTopic, "Kafka topic for -publish")
		brokers      = flag.String("brokers", strings.Join(cfg.KafkaBrokers, ","), "comma-separated Kafka brokers for -publish")
		logLevel     = flag.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
		logFormat    = flag.String("log-format", cfg.LogFormat, "log format: text or json")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	outputPath := flag.Arg(0)

	logger := observability.NewLogger(*logLevel, *logFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Local mode needs both tables; one without the other is an operator
	// mistake, not a fallback to remote.
	if (*masterPath == "") != (*acftrefPath == "") {
		logger.Error("-master and -acftref must be supplied together")
		os.Exit(2)
	}

	var extractor pipeline.Extractor
	if *masterPath != "" {
		logger.Info("using local source tables", "acftref", *acftrefPath, "master", *masterPath)
		extractor = faa.NewLocalSource(*acftrefPath, *masterPath, logger)
	} else {
		client := faa.NewClient(*timeout, clock, logger)
		extractor = faa.NewRemoteSource(*url, client, metrics, logger)
	}

	sinks := []pipeline.Sink{etcfile.NewWriter(outputPath, logger)}
	var publisher *kafkaadapter.Publisher
	if *publish {
		publisher = kafkaadapter.NewPublisher(config.ParseBrokers(*brokers), *publishTopic, clock, logger)
		sinks = append(sinks, publisher)
		logger.Info("record publishing enabled", "topic", *publishTopic)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(extractor, pipeline.MultiSink(sinks...), logger, metrics, clock)
	runErr := p.Run(ctx)

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logSummary(logger, metrics.Summary())

	if runErr != nil {
		logger.Error("conversion failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("conversion succeeded", "output", outputPath)
}

// logSummary emits the gathered run metrics as one structured line, keys
// sorted for stable output.
func logSummary(logger *slog.Logger, summary map[string]float64) {
	args := make([]any, 0, len(summary)*2)
	for _, name := range slices.Sorted(maps.Keys(summary)) {
		args = append(args, name, summary[name])
	}
	logger.Info("run summary", args...)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: faa2etc [flags] OUTPUT

Converts the FAA Releasable Aircraft Database into a pipe-delimited lookup
table keyed by tail number. OUTPUT is the destination path, or - for stdout.

By default the current distribution archive is downloaded from the FAA;
supply -master and -acftref to convert tables already on disk instead.

Flags:
`)
	flag.PrintDefaults()
}
