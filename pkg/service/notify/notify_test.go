package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/service/notify"
	"github.com/slack-go/slack"
)

func intPtr(v int) *int { return &v }

func highRiskHazard() *model.Hazard {
	h := &model.Hazard{
		ID:                types.NewHazardID(),
		Activity:          "Traversen montieren",
		Description:       "Absturz aus großer Höhe",
		Severity:          intPtr(5),
		Probability:       intPtr(3),
		TechnicalMeasures: "Fallschutz",
	}
	h.Reclassify()
	return h
}

func TestNew(t *testing.T) {
	_, err := notify.New("", "C1")
	gt.Error(t, err)

	_, err = notify.New("xoxb-test", "")
	gt.Error(t, err)

	svc, err := notify.New("xoxb-test", "C1")
	gt.NoError(t, err)
	gt.Bool(t, svc != nil).True()
}

func TestHighRisk(t *testing.T) {
	var gotChannel, gotBlocks string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseForm())
		gt.Bool(t, strings.HasSuffix(r.URL.Path, "chat.postMessage")).True()
		gotChannel = r.Form.Get("channel")
		gotBlocks = r.Form.Get("blocks")

		w.Header().Set("Content-Type", "application/json")
		gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"channel": "C123",
			"ts":      "1700000000.000100",
		}))
	}))
	defer srv.Close()

	svc, err := notify.New("xoxb-test", "C123", notify.WithAPIURL(srv.URL+"/"), notify.WithBaseURL("https://docs.example.com/"))
	gt.NoError(t, err).Required()

	project := &model.Project{ID: "p1", Name: "Sommerfest"}
	ts, err := svc.HighRisk(context.Background(), project, highRiskHazard())
	gt.NoError(t, err).Required()
	gt.Value(t, ts).Equal("1700000000.000100")
	gt.Value(t, gotChannel).Equal("C123")
	gt.String(t, gotBlocks).Contains("Traversen montieren")
	gt.String(t, gotBlocks).Contains("https://docs.example.com/projects/p1")
}

func TestBuildHighRiskBlocks(t *testing.T) {
	blocks := notify.BuildHighRiskBlocks(&model.Project{ID: "p1", Name: "Fest"}, highRiskHazard(), "")
	gt.Array(t, blocks).Length(4)
	gt.Value(t, blocks[0].BlockType()).Equal(slack.MBTHeader)
	gt.Value(t, blocks[3].BlockType()).Equal(slack.MBTContext)

	raw, err := json.Marshal(blocks[3])
	gt.NoError(t, err).Required()
	gt.String(t, string(raw)).Contains("hoch (15)")
	gt.Bool(t, strings.Contains(string(raw), ":link:")).False()
}

func TestTruncate(t *testing.T) {
	gt.Value(t, notify.Truncate("kurz", 10)).Equal("kurz")

	s := strings.Repeat("ä", 10) // 20 bytes
	out := notify.Truncate(s, 9)
	gt.Bool(t, utf8.ValidString(out)).True()
	gt.Bool(t, len(out) <= 9).True()
	gt.Bool(t, strings.HasSuffix(out, "…")).True()
}
