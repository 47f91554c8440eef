// Package report lays out safety documents (hazard overview, participant
// roster, briefing) and renders them to PDF. Builders turn already
// persisted rows into a Document; Render turns any Document into bytes.
// Neither step mutates its input or touches storage.
package report

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// ErrInvalidHeader is returned when a report is requested without a subject
var ErrInvalidHeader = goerr.New("report header requires a subject name")

// Placeholder is printed for metadata values that are not set
const Placeholder = "N/A"

const dateLayout = "02.01.2006"

// Kind identifies one of the three document layouts
type Kind string

const (
	KindHazardOverview Kind = "gbu"
	KindRoster         Kind = "participants"
	KindBriefing       Kind = "briefing"
)

// Prefix is the file name prefix of the kind
func (k Kind) Prefix() string {
	switch k {
	case KindHazardOverview:
		return "GBU"
	case KindRoster:
		return "Teilnehmerliste"
	case KindBriefing:
		return "Unterweisung"
	default:
		return "Dokument"
	}
}

func (k Kind) IsValid() bool {
	switch k {
	case KindHazardOverview, KindRoster, KindBriefing:
		return true
	default:
		return false
	}
}

// Header is the metadata every report starts with. Only Subject is required.
type Header struct {
	Subject       string              `toml:"subject"`
	Location      string              `toml:"location"`
	Date          *time.Time          `toml:"date"`
	Season        types.Season        `toml:"season"`
	IndoorOutdoor types.IndoorOutdoor `toml:"indoor_outdoor"`

	// GeneratedAt is printed in footers and pinned as the PDF creation
	// date, so the same input always yields the same document.
	GeneratedAt time.Time `toml:"generated_at"`
}

func (h Header) validate() error {
	if strings.TrimSpace(h.Subject) == "" {
		return goerr.Wrap(ErrInvalidHeader, "subject is empty")
	}
	return nil
}

// metadata returns the standard project lines. Missing values are kept as
// placeholders so every report has the same header layout.
func (h Header) metadata() []Field {
	return []Field{
		{Label: "Projekt", Value: h.Subject},
		{Label: "Ort", Value: orPlaceholder(h.Location)},
		{Label: "Datum", Value: formatDate(h.Date)},
		{Label: "Saison", Value: orPlaceholder(h.Season.Label())},
		{Label: "Indoor/Outdoor", Value: orPlaceholder(h.IndoorOutdoor.Label())},
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func formatDate(d *time.Time) string {
	if d == nil || d.IsZero() {
		return Placeholder
	}
	return d.Format(dateLayout)
}

// FileName returns the suggested download name, <Prefix>_<subject>.pdf.
// Path separators in the subject are replaced.
func FileName(kind Kind, subject string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(subject))
	return kind.Prefix() + "_" + name + ".pdf"
}
