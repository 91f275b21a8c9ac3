package app

import (
	"context"

	"github.com/honeycarbs/sourcestack/internal/config"
	storageneo4j "github.com/honeycarbs/sourcestack/internal/storage/neo4j"
	storagesheets "github.com/honeycarbs/sourcestack/internal/storage/sheets"
	"github.com/honeycarbs/sourcestack/pkg/logging"
	n4j "github.com/honeycarbs/sourcestack/pkg/neo4j"
	"github.com/honeycarbs/sourcestack/pkg/sheets"
	"github.com/honeycarbs/sourcestack/pkg/sourcestack"
)

// provideSourceStackConfig extracts the API client config from main config
func provideSourceStackConfig(cfg config.Config) sourcestack.Config {
	return sourcestack.Config{
		APIKey:  cfg.SourceStack.APIKey,
		BaseURL: cfg.SourceStack.BaseURL,
		Timeout: cfg.SourceStack.Timeout,
	}
}

// provideRecorder connects to Neo4j when configured, otherwise returns a nil Recorder
func provideRecorder(cfg config.Config, logger *logging.Logger) (Recorder, func(), error) {
	if !cfg.Neo4jEnabled() {
		logger.Debug("neo4j not configured, result recording disabled")
		return nil, func() {}, nil
	}

	client, cleanup, err := n4j.NewClient(n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
	return storageneo4j.NewResultRepository(client), cleanup, nil
}

// provideExporter builds a Sheets exporter when credentials are configured
func provideExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) (Exporter, error) {
	if !cfg.SheetsEnabled() {
		logger.Debug("sheets credentials not configured, export disabled")
		return nil, nil
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		return nil, err
	}

	logger.Info("Google Sheets client initialized")
	return storagesheets.NewStatisticsExporter(client), nil
}
