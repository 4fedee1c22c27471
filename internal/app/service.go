// Package service runs export cycles: it reads the competition database,
// joins and renders it, writes the output files and publishes the result for
// live readers.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/repository"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/source"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/export"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/joiner"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/resolver"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/metrics"
)

// Request describes one export cycle.
type Request struct {
	// SourcePath is the competition database location passed to the table source.
	SourcePath string
	// EVTPath and JSONPath are the output files. Empty paths are not written.
	EVTPath  string
	JSONPath string
	// CompetitionOverride bypasses competition resolution when set.
	CompetitionOverride *int
}

// Service runs export cycles one at a time.
type Service struct {
	mu sync.Mutex

	source  model.TableReader
	fs      afero.Fs
	store   repository.Store
	render  export.Options
	request Request

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the table source. Defaults to mdb-export from PATH.
func WithSource(src model.TableReader) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithFS sets the filesystem used to check the source and write outputs.
func WithFS(fs afero.Fs) Option {
	return func(s *Service) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithStore sets where successful snapshots are published.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithAffiliationURLTemplate sets the template for lane affiliation URLs.
func WithAffiliationURLTemplate(tmpl string) Option {
	return func(s *Service) {
		s.render.AffiliationURLTemplate = tmpl
	}
}

// WithRequest sets the request used by RunOnce.
func WithRequest(req Request) Option {
	return func(s *Service) {
		s.request = req
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{
		fs:     afero.NewOsFs(),
		store:  repository.NewSnapshotStore(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.source == nil {
		s.source = source.NewChain([]source.Strategy{source.NewMDBExport("")}, source.WithLogger(s.logger))
	}
	return s
}

// Store returns the snapshot store the service publishes to.
func (s *Service) Store() repository.Store {
	return s.store
}

// RunOnce runs a cycle with the configured request.
func (s *Service) RunOnce(ctx context.Context) error {
	_, err := s.RunCycle(ctx, s.request)
	return err
}

// RunCycle reads, joins, renders and writes one export, then publishes the
// snapshot. Nothing is published when any step fails, so readers keep the
// previous snapshot.
func (s *Service) RunCycle(ctx context.Context, req Request) (*repository.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	log := s.logger.With(logger.String("cycle", id.String()))
	start := time.Now()

	snap, tables, err := s.run(ctx, log, id, req)
	took := time.Since(start)
	if err != nil {
		kind := ErrorKind(err)
		metrics.RecordCycle(metrics.ResultFailure, took)
		metrics.RecordCycleError(kind)
		log.Error(ctx, "export cycle failed",
			logger.String("source", req.SourcePath),
			logger.String("kind", kind),
			logger.Int("tablesRead", tables),
			logger.Error(err),
		)
		return nil, err
	}

	snap.Duration = took
	if err := s.store.Publish(ctx, snap); err != nil {
		metrics.RecordCycle(metrics.ResultFailure, took)
		return nil, fmt.Errorf("publish snapshot: %w", err)
	}
	metrics.RecordCycle(metrics.ResultSuccess, took)
	log.Info(ctx, "export cycle completed",
		logger.Int("competitionId", snap.CompetitionID),
		logger.Int("races", snap.RaceCount),
		logger.Int("lanes", snap.LaneCount),
		logger.Int("tablesRead", tables),
		logger.Int64("durationMs", took.Milliseconds()),
	)
	return snap, nil
}

func (s *Service) run(ctx context.Context, log logger.Logger, id uuid.UUID, req Request) (*repository.Snapshot, int, error) {
	exists, err := afero.Exists(s.fs, req.SourcePath)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, req.SourcePath, err)
	}
	if !exists {
		return nil, 0, fmt.Errorf("%w: %s", ErrSourceNotFound, req.SourcePath)
	}

	cache := source.NewCycleCache(s.source)

	competitionID, err := resolver.ResolveCompetitionID(ctx, cache, req.SourcePath, req.CompetitionOverride)
	if err != nil {
		return nil, cache.Reads(), fmt.Errorf("resolve competition: %w", err)
	}
	log.Debug(ctx, "competition resolved",
		logger.Int("competitionId", competitionID),
		logger.Bool("override", req.CompetitionOverride != nil),
	)

	m, err := joiner.New(cache, req.SourcePath, joiner.WithLogger(log)).Load(ctx, competitionID)
	if err != nil {
		return nil, cache.Reads(), fmt.Errorf("join tables: %w", err)
	}

	doc, err := export.Render(m, s.render)
	if err != nil {
		return nil, cache.Reads(), err
	}

	if req.EVTPath != "" || req.JSONPath != "" {
		if err := export.WriteFiles(s.fs, doc, req.EVTPath, req.JSONPath); err != nil {
			return nil, cache.Reads(), err
		}
		log.Debug(ctx, "outputs written",
			logger.String("evt", req.EVTPath),
			logger.String("json", req.JSONPath),
		)
	}

	compact, err := export.MarshalJSON(doc.Races, "")
	if err != nil {
		return nil, cache.Reads(), err
	}

	return &repository.Snapshot{
		ID:            id,
		CompetitionID: competitionID,
		Races:         doc.Races,
		JSON:          compact,
		RaceCount:     len(doc.Races),
		LaneCount:     doc.LaneCount(),
		BuiltAt:       time.Now(),
	}, cache.Reads(), nil
}
