package usecase_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/report"
	"github.com/secmon-lab/safetydocs/pkg/service/archive"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
	"github.com/secmon-lab/safetydocs/pkg/utils/metrics"
)

func waitForKeys(t *testing.T, store *archive.Memory, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if keys := store.Keys(); len(keys) >= n {
			return keys
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d archived reports, got %d", n, len(store.Keys()))
	return nil
}

func TestReports(t *testing.T) {
	store := archive.NewMemory()
	m := metrics.New()
	f := setup(t, usecase.WithArchive(store), usecase.WithMetrics(m))
	p := f.newProject(t)

	_, err := f.uc.Hazard.Create(asLeader(), p.ID, usecase.HazardInput{
		Activity:    "Bühnenaufbau",
		Description: "Absturz von Traversen",
		Severity:    intPtr(3),
		Probability: intPtr(2),
		Technical:   types.CheckTrue,
		Mitigation:  "Sicherungsseile",
	})
	gt.NoError(t, err).Required()
	_, err = f.uc.Participant.Create(asLeader(), p.ID, usecase.ParticipantInput{FirstName: "Eva", LastName: "Muster"})
	gt.NoError(t, err).Required()
	b, err := f.uc.Briefing.Generate(asLeader(), p.ID)
	gt.NoError(t, err).Required()

	t.Run("hazard overview", func(t *testing.T) {
		r, err := f.uc.Report.HazardOverview(asUser(), p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, r.Kind).Equal(report.KindHazardOverview)
		gt.String(t, r.FileName).Equal("GBU_Sommerfest.pdf")
		gt.Bool(t, bytes.HasPrefix(r.Data, []byte("%PDF"))).True()
		gt.Value(t, r.GeneratedAt).Equal(fixedNow)
	})

	t.Run("roster", func(t *testing.T) {
		r, err := f.uc.Report.Roster(asUser(), p.ID)
		gt.NoError(t, err).Required()
		gt.String(t, r.FileName).Equal("Teilnehmerliste_Sommerfest.pdf")
		gt.Bool(t, bytes.HasPrefix(r.Data, []byte("%PDF"))).True()
	})

	t.Run("briefing", func(t *testing.T) {
		r, err := f.uc.Report.Briefing(asUser(), b.ID)
		gt.NoError(t, err).Required()
		gt.String(t, r.FileName).Equal("Unterweisung_Sommerfest.pdf")
		gt.Bool(t, bytes.HasPrefix(r.Data, []byte("%PDF"))).True()
	})

	t.Run("outsider is denied", func(t *testing.T) {
		_, err := f.uc.Report.HazardOverview(asOther(), p.ID)
		gt.Error(t, err).Is(usecase.ErrPermissionDenied)
		_, err = f.uc.Report.Briefing(asOther(), b.ID)
		gt.Error(t, err).Is(usecase.ErrPermissionDenied)
	})

	t.Run("reports are archived", func(t *testing.T) {
		keys := waitForKeys(t, store, 3)
		var gbu string
		for _, k := range keys {
			if strings.Contains(k, "/gbu/") {
				gbu = k
			}
		}
		gt.String(t, gbu).Equal(p.ID.String() + "/gbu/20260504T100000_GBU_Sommerfest.pdf")
	})

	t.Run("renders are counted", func(t *testing.T) {
		n, err := testutil.GatherAndCount(m.Gatherer(), "safetydocs_report_rendered_total")
		gt.NoError(t, err).Required()
		gt.Number(t, n).Equal(3)
	})
}

func TestReportEmptyProject(t *testing.T) {
	f := setup(t)
	p := f.newProject(t)

	r, err := f.uc.Report.HazardOverview(asLeader(), p.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, bytes.HasPrefix(r.Data, []byte("%PDF"))).True()

	r, err = f.uc.Report.Roster(asLeader(), p.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, bytes.HasPrefix(r.Data, []byte("%PDF"))).True()
}

func TestHazardRows(t *testing.T) {
	areas := []*model.Area{{ID: "a1", Name: "Bühne"}}
	hazards := []*model.Hazard{
		{
			AreaID:            "a1",
			Activity:          "Aufbau",
			Description:       "Absturz",
			Severity:          intPtr(2),
			Probability:       intPtr(3),
			RiskBand:          types.RiskBandHigh,
			Substitution:      types.CheckFalse,
			Technical:         types.CheckTrue,
			Mitigation:        "Seile",
			TechnicalMeasures: "Netze",
		},
		{AreaID: "gone", Activity: "Abbau", Personal: types.CheckUnset},
	}

	rows := usecase.HazardRows(hazards, areas)
	gt.Array(t, rows).Length(2)
	gt.String(t, rows[0].Area).Equal("Bühne")
	gt.Bool(t, rows[0].Technical).True()
	gt.Bool(t, rows[0].Substitution).False()
	gt.String(t, rows[0].Mitigation).Equal("Seile\nNetze")
	gt.Value(t, rows[0].RiskBand).Equal(types.RiskBandHigh)
	gt.String(t, rows[1].Area).Equal("")
	gt.Bool(t, rows[1].Personal).False()
}
