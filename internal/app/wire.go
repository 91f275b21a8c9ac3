//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/sourcestack/internal/config"
	"github.com/honeycarbs/sourcestack/internal/search"
	"github.com/honeycarbs/sourcestack/pkg/logging"
	"github.com/honeycarbs/sourcestack/pkg/sourcestack"
)

// InitializeResources creates Resources with all resources wired up.
// The returned cleanup releases the optional Neo4j connection.
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// SourceStack API
		provideSourceStackConfig,
		sourcestack.NewClient,

		// Core
		search.NewServiceWithDeps,

		// Optional sinks
		provideRecorder,
		provideExporter,

		newResources,
	)

	return nil, nil, nil
}
