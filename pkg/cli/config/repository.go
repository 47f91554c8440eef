package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/repository/firestore"
	"github.com/secmon-lab/safetydocs/pkg/repository/memory"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	backendFirestore = "firestore"
	backendMemory    = "memory"
)

// Repository selects and opens the storage backend
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	emulatorHost     string
}

func (x *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Storage backend (firestore or memory)",
			Value:       backendFirestore,
			Category:    "Repository",
			Sources:     cli.EnvVars("SAFETYDOCS_REPOSITORY_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID (required for the firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("SAFETYDOCS_FIRESTORE_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("SAFETYDOCS_FIRESTORE_DATABASE_ID"),
			Destination: &x.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix for all Firestore collection names",
			Category:    "Repository",
			Sources:     cli.EnvVars("SAFETYDOCS_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &x.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "firestore-emulator-host",
			Usage:       "Connect to a Firestore emulator (host:port) instead of Google Cloud",
			Category:    "Repository",
			Sources:     cli.EnvVars("SAFETYDOCS_FIRESTORE_EMULATOR_HOST"),
			Destination: &x.emulatorHost,
		},
	}
}

func (x Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("project_id", x.projectID),
		slog.String("database_id", x.databaseID),
		slog.String("collection_prefix", x.collectionPrefix),
		slog.String("emulator_host", x.emulatorHost),
	)
}

// Configure opens the selected backend. The caller closes the returned
// repository.
func (x *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch x.backend {
	case backendFirestore:
		if x.projectID == "" {
			return nil, goerr.Wrap(ErrMissingOption, "firestore-project-id is required for the firestore backend")
		}
		if x.emulatorHost != "" {
			// picked up by the Firestore client
			if err := os.Setenv("FIRESTORE_EMULATOR_HOST", x.emulatorHost); err != nil {
				return nil, goerr.Wrap(err, "failed to point client at emulator")
			}
		}

		var opts []firestore.Option
		if x.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(x.collectionPrefix))
		}
		repo, err := firestore.New(ctx, x.projectID, x.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.From(ctx).Info("Using Firestore repository", "repository", x)
		return repo, nil

	case backendMemory:
		logging.From(ctx).Warn("Using in-memory repository, data is lost on exit")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid repository backend", goerr.V("backend", x.backend))
	}
}
