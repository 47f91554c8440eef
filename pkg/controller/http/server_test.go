package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/safetydocs/pkg/controller/http"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/repository/memory"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
	"github.com/secmon-lab/safetydocs/pkg/utils/metrics"
)

var secret = []byte(strings.Repeat("k", usecase.MinSecretLength))

type testEnv struct {
	srv     *httptest.Server
	repo    *memory.Memory
	metrics *metrics.Metrics
	tokens  map[types.UserID]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := memory.New()
	ctx := context.Background()
	env := &testEnv{repo: repo, metrics: metrics.New(), tokens: map[types.UserID]string{}}

	for _, u := range []*model.User{
		{ID: "admin", Email: "admin@example.com", Role: types.RoleAdmin, Active: true},
		{ID: "pl", Email: "pl@example.com", Role: types.RoleProjektleiter, Active: true},
		{ID: "bl", Email: "bl@example.com", Role: types.RoleBereichsleiter, Active: true},
		{ID: "user", Email: "user@example.com", Role: types.RoleUser, Active: true},
	} {
		gt.NoError(t, repo.User().Put(ctx, u)).Required()
		token, err := usecase.IssueToken(secret, u.ID, time.Hour, time.Now())
		gt.NoError(t, err).Required()
		env.tokens[u.ID] = token
	}

	authn, err := usecase.NewJWTAuthenticator(repo, secret)
	gt.NoError(t, err).Required()

	uc := usecase.New(repo, usecase.WithAuth(authn), usecase.WithMetrics(env.metrics))
	env.srv = httptest.NewServer(server.New(uc, server.WithMetrics(env.metrics)))
	t.Cleanup(env.srv.Close)
	return env
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r *response) decode(t *testing.T, v any) {
	t.Helper()
	gt.NoError(t, json.Unmarshal(r.body, v)).Required()
}

func (e *testEnv) do(t *testing.T, method, path string, as types.UserID, body any) *response {
	t.Helper()

	var rd io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(v)
	default:
		raw, err := json.Marshal(v)
		gt.NoError(t, err).Required()
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	gt.NoError(t, err).Required()
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[as])
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) *response {
	t.Helper()

	resp, err := e.srv.Client().Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()
	return &response{status: resp.StatusCode, header: resp.Header, body: data}
}

func (e *testEnv) createProject(t *testing.T) *model.Project {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/api/projects", "pl", map[string]any{
		"name":       "Sommerfest",
		"location":   "Stadtpark",
		"start_date": "2026-07-10",
	})
	gt.Number(t, resp.status).Equal(http.StatusCreated)

	var p model.Project
	resp.decode(t, &p)
	return &p
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/health", "", nil)
	gt.Number(t, resp.status).Equal(http.StatusOK)
	gt.String(t, string(resp.body)).Contains(`"ok"`)

	env.do(t, http.MethodGet, "/api/projects", "pl", nil)

	resp = env.do(t, http.MethodGet, "/metrics", "", nil)
	gt.Number(t, resp.status).Equal(http.StatusOK)
	gt.String(t, string(resp.body)).Contains("safetydocs_http_requests_total")
}

func TestAuthentication(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing token", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/users/me", "", nil)
		gt.Number(t, resp.status).Equal(http.StatusUnauthorized)
		gt.String(t, string(resp.body)).Contains(`"error"`)
	})

	t.Run("bad token", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/api/users/me", nil)
		gt.NoError(t, err).Required()
		req.Header.Set("Authorization", "Bearer nonsense")
		resp := env.send(t, req)
		gt.Number(t, resp.status).Equal(http.StatusUnauthorized)
	})

	t.Run("me", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/users/me", "bl", nil)
		gt.Number(t, resp.status).Equal(http.StatusOK)

		var u model.User
		resp.decode(t, &u)
		gt.Value(t, u.Role).Equal(types.RoleBereichsleiter)
	})
}

func TestNoAuthMode(t *testing.T) {
	repo := memory.New()
	gt.NoError(t, repo.User().Put(context.Background(), &model.User{ID: "dev", Email: "dev@localhost", Role: types.RoleAdmin, Active: true})).Required()

	uc := usecase.New(repo, usecase.WithAuth(usecase.NewNoAuthnUseCase(repo, "dev")))
	srv := httptest.NewServer(server.New(uc))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api/users/me")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)
}

func TestUserEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/users", "user", nil)
	gt.Number(t, resp.status).Equal(http.StatusForbidden)

	resp = env.do(t, http.MethodPost, "/api/users", "admin", map[string]any{"email": "bad"})
	gt.Number(t, resp.status).Equal(http.StatusBadRequest)
	gt.String(t, string(resp.body)).Contains("email:email")

	resp = env.do(t, http.MethodPost, "/api/users", "admin", map[string]any{"email": "neu@example.com", "role": "projektleiter"})
	gt.Number(t, resp.status).Equal(http.StatusCreated)
	var u model.User
	resp.decode(t, &u)

	resp = env.do(t, http.MethodPost, "/api/users", "admin", map[string]any{"email": "neu@example.com"})
	gt.Number(t, resp.status).Equal(http.StatusConflict)

	resp = env.do(t, http.MethodDelete, "/api/users/admin", "admin", nil)
	gt.Number(t, resp.status).Equal(http.StatusForbidden)

	resp = env.do(t, http.MethodDelete, "/api/users/"+u.ID.String(), "admin", nil)
	gt.Number(t, resp.status).Equal(http.StatusNoContent)
}

func TestProjectFlow(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t)
	gt.Value(t, p.Season).Equal(types.SeasonSummer)
	base := "/api/projects/" + p.ID.String()

	t.Run("plain user cannot create", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/projects", "user", map[string]any{"name": "x"})
		gt.Number(t, resp.status).Equal(http.StatusForbidden)
	})

	t.Run("validation", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/projects", "pl", map[string]any{"name": "x", "season": "monsoon"})
		gt.Number(t, resp.status).Equal(http.StatusBadRequest)

		resp = env.do(t, http.MethodPost, "/api/projects", "pl", map[string]any{"name": "x", "start_date": "10.07.2026"})
		gt.Number(t, resp.status).Equal(http.StatusBadRequest)

		resp = env.do(t, http.MethodPost, "/api/projects", "pl", `{"name":`)
		gt.Number(t, resp.status).Equal(http.StatusBadRequest)

		resp = env.do(t, http.MethodPost, "/api/projects", "pl", map[string]any{"name": "x", "unknown": 1})
		gt.Number(t, resp.status).Equal(http.StatusBadRequest)
	})

	t.Run("not visible to outsiders", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, base, "user", nil)
		gt.Number(t, resp.status).Equal(http.StatusForbidden)

		resp = env.do(t, http.MethodGet, "/api/projects", "user", nil)
		var list []model.Project
		resp.decode(t, &list)
		gt.Array(t, list).Length(0)
	})

	t.Run("members", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, base+"/members", "pl", map[string]any{"user_id": "user"})
		gt.Number(t, resp.status).Equal(http.StatusCreated)

		resp = env.do(t, http.MethodGet, base, "user", nil)
		gt.Number(t, resp.status).Equal(http.StatusOK)

		resp = env.do(t, http.MethodGet, base+"/members", "user", nil)
		var members []model.ProjectMember
		resp.decode(t, &members)
		gt.Array(t, members).Length(1)
	})

	t.Run("hazards", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, base+"/hazards", "user", map[string]any{
			"activity":    "Bühnenaufbau",
			"hazard":      "Absturz",
			"severity":    4,
			"probability": 2,
			"technical":   true,
			"personal":    nil,
		})
		gt.Number(t, resp.status).Equal(http.StatusCreated)
		var h model.Hazard
		resp.decode(t, &h)
		gt.Value(t, h.RiskBand).Equal(types.RiskBandHigh)
		gt.Value(t, h.Technical).Equal(types.CheckTrue)
		gt.Value(t, h.Personal).Equal(types.CheckUnset)

		resp = env.do(t, http.MethodPost, base+"/hazards", "user", map[string]any{"activity": "x", "severity": 9})
		gt.Number(t, resp.status).Equal(http.StatusBadRequest)

		resp = env.do(t, http.MethodPut, "/api/hazards/"+h.ID.String(), "user", map[string]any{
			"activity": "Bühnenaufbau", "severity": 1, "probability": 1,
		})
		gt.Number(t, resp.status).Equal(http.StatusOK)
		resp.decode(t, &h)
		gt.Value(t, h.RiskBand).Equal(types.RiskBandLow)

		resp = env.do(t, http.MethodGet, "/api/hazards/missing", "user", nil)
		gt.Number(t, resp.status).Equal(http.StatusNotFound)
	})

	t.Run("gbu report", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, base+"/reports/gbu", "user", nil)
		gt.Number(t, resp.status).Equal(http.StatusOK)
		gt.String(t, resp.header.Get("Content-Type")).Equal("application/pdf")
		gt.String(t, resp.header.Get("Content-Disposition")).Equal(`attachment; filename="GBU_Sommerfest.pdf"`)
		gt.Bool(t, bytes.HasPrefix(resp.body, []byte("%PDF"))).True()
	})

	t.Run("delete is admin only", func(t *testing.T) {
		resp := env.do(t, http.MethodDelete, base, "pl", nil)
		gt.Number(t, resp.status).Equal(http.StatusForbidden)

		resp = env.do(t, http.MethodDelete, base, "admin", nil)
		gt.Number(t, resp.status).Equal(http.StatusNoContent)

		resp = env.do(t, http.MethodGet, base, "admin", nil)
		gt.Number(t, resp.status).Equal(http.StatusNotFound)
	})
}

func TestParticipantEndpoints(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t)
	base := "/api/projects/" + p.ID.String()

	t.Run("csv body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, env.srv.URL+base+"/participants/import",
			strings.NewReader("first_name,last_name\nEva,Muster\n,Ohne\n"))
		gt.NoError(t, err).Required()
		req.Header.Set("Authorization", "Bearer "+env.tokens["pl"])
		req.Header.Set("Content-Type", "text/csv")

		resp := env.send(t, req)
		gt.Number(t, resp.status).Equal(http.StatusCreated)
		var result usecase.ImportResult
		resp.decode(t, &result)
		gt.Number(t, result.Created).Equal(1)
		gt.Array(t, result.Errors).Length(1)
		gt.Number(t, result.Errors[0].Line).Equal(3)
	})

	t.Run("multipart upload", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "teilnehmer.csv")
		gt.NoError(t, err).Required()
		_, err = fw.Write([]byte("first_name,last_name,company\nMax,Mann,ACME\n"))
		gt.NoError(t, err).Required()
		gt.NoError(t, mw.Close()).Required()

		req, err := http.NewRequest(http.MethodPost, env.srv.URL+base+"/participants/import", &buf)
		gt.NoError(t, err).Required()
		req.Header.Set("Authorization", "Bearer "+env.tokens["pl"])
		req.Header.Set("Content-Type", mw.FormDataContentType())

		resp := env.send(t, req)
		gt.Number(t, resp.status).Equal(http.StatusCreated)
	})

	t.Run("missing header column", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, base+"/participants/import", "pl", "name\nEva\n")
		gt.Number(t, resp.status).Equal(http.StatusBadRequest)
	})

	var list []model.Participant
	env.do(t, http.MethodGet, base+"/participants", "pl", nil).decode(t, &list)
	gt.Array(t, list).Length(2)

	t.Run("sign", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/participants/"+list[0].ID.String()+"/sign", "pl", map[string]any{})
		gt.Number(t, resp.status).Equal(http.StatusBadRequest)

		resp = env.do(t, http.MethodPost, "/api/participants/"+list[0].ID.String()+"/sign", "pl", map[string]any{"signature_data": "data:image/png;base64,AA"})
		gt.Number(t, resp.status).Equal(http.StatusOK)
		var signed model.Participant
		resp.decode(t, &signed)
		gt.Value(t, signed.SignatureType).Equal(types.SignatureDigital)

		resp = env.do(t, http.MethodPost, "/api/participants/"+list[1].ID.String()+"/analog", "pl", nil)
		gt.Number(t, resp.status).Equal(http.StatusOK)
	})

	t.Run("roster report", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, base+"/reports/participants", "pl", nil)
		gt.Number(t, resp.status).Equal(http.StatusOK)
		gt.String(t, resp.header.Get("Content-Disposition")).Equal(`attachment; filename="Teilnehmerliste_Sommerfest.pdf"`)
	})
}

func TestBriefingEndpoints(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t)
	base := "/api/projects/" + p.ID.String()

	resp := env.do(t, http.MethodPost, base+"/briefings/generate", "pl", nil)
	gt.Number(t, resp.status).Equal(http.StatusCreated)
	var b model.Briefing
	resp.decode(t, &b)
	gt.String(t, b.Title).Equal("Sicherheitsunterweisung - Sommerfest")

	resp = env.do(t, http.MethodPut, "/api/briefings/"+b.ID.String(), "pl", map[string]any{"title": "Unterweisung Aufbau"})
	gt.Number(t, resp.status).Equal(http.StatusOK)
	var updated model.Briefing
	resp.decode(t, &updated)
	gt.Array(t, updated.Items).Length(len(b.Items))

	resp = env.do(t, http.MethodPut, "/api/briefings/"+b.ID.String(), "pl", map[string]any{"title": ""})
	gt.Number(t, resp.status).Equal(http.StatusBadRequest)

	resp = env.do(t, http.MethodGet, "/api/briefings/"+b.ID.String()+"/report", "pl", nil)
	gt.Number(t, resp.status).Equal(http.StatusOK)
	gt.String(t, resp.header.Get("Content-Disposition")).Equal(`attachment; filename="Unterweisung_Sommerfest.pdf"`)

	resp = env.do(t, http.MethodGet, "/api/briefings/"+b.ID.String()+"/report", "user", nil)
	gt.Number(t, resp.status).Equal(http.StatusForbidden)
}

func TestTemplateAndAreaEndpoints(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t)
	base := "/api/projects/" + p.ID.String()

	resp := env.do(t, http.MethodPost, "/api/templates", "user", map[string]any{"name": "x"})
	gt.Number(t, resp.status).Equal(http.StatusForbidden)

	resp = env.do(t, http.MethodPost, "/api/templates", "pl", map[string]any{"name": "Open Air", "season": "sommer", "indoor_outdoor": "outdoor"})
	gt.Number(t, resp.status).Equal(http.StatusCreated)
	var tmpl model.HazardTemplate
	resp.decode(t, &tmpl)

	resp = env.do(t, http.MethodPost, "/api/templates/"+tmpl.ID.String()+"/hazards", "pl", map[string]any{"activity": "Wetter", "severity": 2, "probability": 2})
	gt.Number(t, resp.status).Equal(http.StatusCreated)

	var list []model.HazardTemplate
	env.do(t, http.MethodGet, "/api/templates?season=winter", "user", nil).decode(t, &list)
	gt.Array(t, list).Length(0)
	env.do(t, http.MethodGet, "/api/templates?season=sommer&indoor_outdoor=outdoor", "user", nil).decode(t, &list)
	gt.Array(t, list).Length(1)

	resp = env.do(t, http.MethodGet, "/api/templates?season=monsoon", "user", nil)
	gt.Number(t, resp.status).Equal(http.StatusBadRequest)

	resp = env.do(t, http.MethodPost, base+"/templates/"+tmpl.ID.String(), "pl", nil)
	gt.Number(t, resp.status).Equal(http.StatusCreated)
	var copied []model.Hazard
	resp.decode(t, &copied)
	gt.Array(t, copied).Length(1)
	gt.Value(t, copied[0].ProjectID).Equal(p.ID)

	resp = env.do(t, http.MethodPost, "/api/areas", "pl", map[string]any{"name": "Bühne"})
	gt.Number(t, resp.status).Equal(http.StatusForbidden)

	resp = env.do(t, http.MethodPost, "/api/areas", "admin", map[string]any{"name": "Bühne"})
	gt.Number(t, resp.status).Equal(http.StatusCreated)
	var area model.Area
	resp.decode(t, &area)

	resp = env.do(t, http.MethodPut, base+"/areas", "pl", map[string]any{"area_id": area.ID, "user_id": "user"})
	gt.Number(t, resp.status).Equal(http.StatusBadRequest)

	resp = env.do(t, http.MethodPut, base+"/areas", "pl", map[string]any{"area_id": area.ID, "user_id": "bl", "notes": "Aufbau"})
	gt.Number(t, resp.status).Equal(http.StatusOK)

	var assignments []model.AreaAssignment
	env.do(t, http.MethodGet, base+"/areas", "pl", nil).decode(t, &assignments)
	gt.Array(t, assignments).Length(1)

	resp = env.do(t, http.MethodDelete, base+"/areas/"+area.ID.String(), "pl", nil)
	gt.Number(t, resp.status).Equal(http.StatusNoContent)
}

func TestAuditEndpoint(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t)

	resp := env.do(t, http.MethodGet, "/api/audit", "pl", nil)
	gt.Number(t, resp.status).Equal(http.StatusForbidden)

	resp = env.do(t, http.MethodGet, "/api/audit?resource=project&id="+p.ID.String(), "admin", nil)
	gt.Number(t, resp.status).Equal(http.StatusOK)
	var entries []model.AuditEntry
	resp.decode(t, &entries)
	gt.Array(t, entries).Length(1)
	gt.Value(t, entries[0].Action).Equal("create_project")

	resp = env.do(t, http.MethodGet, "/api/audit?limit=abc", "admin", nil)
	gt.Number(t, resp.status).Equal(http.StatusBadRequest)
}
