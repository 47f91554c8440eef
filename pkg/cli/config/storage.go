package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/service/archive"
	"github.com/urfave/cli/v3"
)

// Storage configures the GCS archive for rendered reports
type Storage struct {
	bucket string
	prefix string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "report-bucket",
			Usage:       "GCS bucket that keeps a copy of every rendered report",
			Category:    "Storage",
			Sources:     cli.EnvVars("SAFETYDOCS_REPORT_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "report-prefix",
			Usage:       "Object name prefix inside the report bucket",
			Category:    "Storage",
			Sources:     cli.EnvVars("SAFETYDOCS_REPORT_PREFIX"),
			Destination: &x.prefix,
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
	)
}

// Configure returns a nil archive when no bucket is set. The caller closes
// the returned GCS client.
func (x *Storage) Configure(ctx context.Context) (*archive.GCS, error) {
	if x.bucket == "" {
		return nil, nil
	}

	svc, err := archive.NewGCS(ctx, x.bucket, archive.WithPrefix(x.prefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create report archive", goerr.V("bucket", x.bucket))
	}
	return svc, nil
}
