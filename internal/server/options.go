package server

import (
	"os"
	"runtime"

	"example.com/tapgate/internal/catalogue"
	"example.com/tapgate/internal/codec"
	"example.com/tapgate/internal/common"
	"example.com/tapgate/internal/config"
	"example.com/tapgate/internal/ftp"
	"example.com/tapgate/internal/rapfile"
	"example.com/tapgate/internal/validate"
)

// Options configures server creation.
type Options struct {
	StorageDir  string
	Settings    config.Settings
	Concurrency int
	Logger      common.Logger
}

// Server coordinates HTTP handlers, a bounded-concurrency validation
// pipeline, and the temporary artifacts a run produces (manifests) for later
// download.
type Server struct {
	validator   *validate.Validator
	emissions   *rapfile.EmissionLog
	artifacts   *ArtifactStore
	workDir     string
	concurrency int
	sem         chan struct{}
	logger      common.Logger
	metrics     *common.ValidationMetrics
}

// NewServer constructs a Server rooted at a temporary workspace directory and
// wires a Validator backed by an in-memory catalogue, the JSON reference
// codec, and a real FTP uploader.
func NewServer(opts Options) (*Server, error) {
	storageDir := opts.StorageDir
	if storageDir == "" {
		storageDir = os.TempDir()
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, err
	}
	workDir, err := os.MkdirTemp(storageDir, "tapvalidated-")
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = common.NopLogger{}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	emissions := rapfile.NewEmissionLog(opts.Settings.EmissionLog)
	emitter := rapfile.NewService(
		catalogue.NewInMemory(),
		codec.NewJSONCodec(),
		ftp.NewClient(),
		opts.Settings,
		logger,
		emissions,
	)
	validator := validate.NewValidator(codec.NewTagDictionary(), emitter, logger)

	s := &Server{
		validator:   validator,
		emissions:   emissions,
		artifacts:   &ArtifactStore{entries: make(map[string]Artifact)},
		workDir:     workDir,
		concurrency: concurrency,
		sem:         make(chan struct{}, concurrency),
		logger:      logger,
		metrics:     common.NewValidationMetrics(),
	}
	return s, nil
}

// Close removes any temporary state associated with the server.
func (s *Server) Close() error {
	if s == nil || s.workDir == "" {
		return nil
	}
	return os.RemoveAll(s.workDir)
}
