package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/safetydocs/pkg/report"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
	"github.com/secmon-lab/safetydocs/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// snapshot is the offline input of a report. Only the section matching
// the requested kind is used.
type snapshot struct {
	Header       report.Header           `toml:"header"`
	Hazards      []report.HazardRow      `toml:"hazard"`
	Participants []report.ParticipantRow `toml:"participant"`
	Briefing     report.BriefingContent  `toml:"briefing"`
}

func cmdReport() *cli.Command {
	var kind string
	var input string
	var output string

	return &cli.Command{
		Name:  "report",
		Usage: "Render a report from a TOML snapshot without a server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "Report kind [gbu|participants|briefing]",
				Required:    true,
				Destination: &kind,
			},
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "Snapshot TOML file",
				Required:    true,
				Destination: &input,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output directory",
				Value:       ".",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path, err := renderSnapshot(ctx, report.Kind(kind), input, output, time.Now())
			if err != nil {
				return err
			}
			logging.Default().Info("Report written", "kind", kind, "path", path)
			return nil
		},
	}
}

func loadSnapshot(path string) (*snapshot, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read snapshot", goerr.V("path", path))
	}

	var snap snapshot
	if err := toml.Unmarshal(data, &snap); err != nil {
		return nil, goerr.Wrap(err, "failed to parse snapshot", goerr.V("path", path))
	}
	for i, h := range snap.Hazards {
		if !h.RiskBand.IsValid() {
			return nil, goerr.New("unknown risk band in snapshot",
				goerr.V("path", path), goerr.V("hazard", i+1), goerr.V("risk_band", h.RiskBand))
		}
	}
	return &snap, nil
}

func buildDocument(kind report.Kind, snap *snapshot) (*report.Document, error) {
	switch kind {
	case report.KindHazardOverview:
		return report.BuildHazardOverview(snap.Header, snap.Hazards)
	case report.KindRoster:
		return report.BuildRoster(snap.Header, snap.Participants)
	case report.KindBriefing:
		return report.BuildBriefing(snap.Header, snap.Briefing)
	default:
		return nil, goerr.New("unknown report kind", goerr.V("kind", kind))
	}
}

// renderSnapshot writes the report into outDir and returns its path. The
// PDF is rendered into a temp file that is renamed once complete.
func renderSnapshot(ctx context.Context, kind report.Kind, input, outDir string, now time.Time) (string, error) {
	if !kind.IsValid() {
		return "", goerr.New("unknown report kind", goerr.V("kind", kind))
	}

	snap, err := loadSnapshot(input)
	if err != nil {
		return "", err
	}
	if snap.Header.GeneratedAt.IsZero() {
		snap.Header.GeneratedAt = now
	}

	doc, err := buildDocument(kind, snap)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build report", goerr.V("kind", kind))
	}

	tmp, err := os.CreateTemp(outDir, ".safetydocs-*.pdf")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temp file", goerr.V("dir", outDir))
	}
	committed := false
	defer func() {
		if !committed {
			if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
				logging.From(ctx).Warn("failed to remove temp file", "path", tmp.Name(), "error", err)
			}
		}
	}()

	renderErr := report.NewRenderer().Render(ctx, doc, tmp)
	if renderErr == nil {
		renderErr = tmp.Sync()
	}
	safe.Close(ctx, tmp, "path", tmp.Name())
	if renderErr != nil {
		return "", goerr.Wrap(renderErr, "failed to render report", goerr.V("kind", kind))
	}

	dst := filepath.Join(outDir, report.FileName(kind, snap.Header.Subject))
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", goerr.Wrap(err, "failed to move report into place", goerr.V("path", dst))
	}
	committed = true

	return dst, nil
}
