package faa

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/aircraft-registry-etl/internal/domain"
	"github.com/couchcryptid/aircraft-registry-etl/internal/observability"
)

// archiveName is the local filename for the downloaded distribution.
const archiveName = "ReleasableAircraft.zip"

// RemoteSource acquires the source tables by downloading and unpacking the
// FAA distribution archive.
type RemoteSource struct {
	url     string
	client  *Client
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewRemoteSource creates a source that downloads the archive at url.
func NewRemoteSource(url string, client *Client, metrics *observability.Metrics, logger *slog.Logger) *RemoteSource {
	return &RemoteSource{
		url:     url,
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Extract downloads the archive into a scoped temporary directory, unpacks
// the two required tables, and parses them. The temporary directory is
// removed on every path out, success or failure.
func (s *RemoteSource) Extract(ctx context.Context) (domain.RegistryTables, error) {
	tmpDir, err := os.MkdirTemp("", "faa2etc-*")
	if err != nil {
		return domain.RegistryTables{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	s.logger.Info("downloading registry database", "url", s.url)
	archivePath := filepath.Join(tmpDir, archiveName)
	size, err := s.client.Download(ctx, s.url, archivePath)
	if err != nil {
		return domain.RegistryTables{}, err
	}
	s.metrics.DownloadBytes.Add(float64(size))

	refPath, regPath, err := extractTables(archivePath, tmpDir)
	if err != nil {
		return domain.RegistryTables{}, err
	}

	return loadTables(refPath, regPath, s.logger)
}

// LocalSource acquires the source tables from paths already on disk,
// bypassing download and extraction entirely.
type LocalSource struct {
	referencePath    string
	registrationPath string
	logger           *slog.Logger
}

// NewLocalSource creates a source that reads the given table files.
func NewLocalSource(referencePath, registrationPath string, logger *slog.Logger) *LocalSource {
	return &LocalSource{
		referencePath:    referencePath,
		registrationPath: registrationPath,
		logger:           logger,
	}
}

// Extract parses the two local table files.
func (s *LocalSource) Extract(_ context.Context) (domain.RegistryTables, error) {
	return loadTables(s.referencePath, s.registrationPath, s.logger)
}

// loadTables runs the two table loaders; parsing is identical in both
// acquisition modes.
func loadTables(refPath, regPath string, logger *slog.Logger) (domain.RegistryTables, error) {
	refs, err := LoadReferenceTable(refPath, logger)
	if err != nil {
		return domain.RegistryTables{}, err
	}

	regs, err := LoadRegistrationTable(regPath, logger)
	if err != nil {
		return domain.RegistryTables{}, err
	}

	return domain.RegistryTables{Reference: refs, Registrations: regs}, nil
}
