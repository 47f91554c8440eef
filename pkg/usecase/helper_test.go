package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/auth"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/repository/memory"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

const (
	adminID  types.UserID = "u-admin"
	leaderID types.UserID = "u-pl"
	areaID   types.UserID = "u-bl"
	plainID  types.UserID = "u-user"
	otherID  types.UserID = "u-other"
)

type fixture struct {
	repo *memory.Memory
	uc   *usecase.UseCases
}

func setup(t *testing.T, opts ...usecase.Option) *fixture {
	t.Helper()

	repo := memory.New()
	ctx := context.Background()
	for _, u := range []*model.User{
		{ID: adminID, Email: "admin@example.com", Role: types.RoleAdmin, Active: true},
		{ID: leaderID, Email: "pl@example.com", Role: types.RoleProjektleiter, Active: true},
		{ID: areaID, Email: "bl@example.com", Role: types.RoleBereichsleiter, Active: true},
		{ID: plainID, Email: "user@example.com", Role: types.RoleUser, Active: true},
		{ID: otherID, Email: "other@example.com", Role: types.RoleUser, Active: true},
	} {
		gt.NoError(t, repo.User().Put(ctx, u)).Required()
	}

	opts = append([]usecase.Option{usecase.WithClock(func() time.Time { return fixedNow })}, opts...)
	return &fixture{repo: repo, uc: usecase.New(repo, opts...)}
}

func as(id types.UserID, role types.Role) context.Context {
	return auth.ContextWithActor(context.Background(), &auth.Actor{UserID: id, Role: role})
}

func asAdmin() context.Context  { return as(adminID, types.RoleAdmin) }
func asLeader() context.Context { return as(leaderID, types.RoleProjektleiter) }
func asUser() context.Context   { return as(plainID, types.RoleUser) }
func asOther() context.Context  { return as(otherID, types.RoleUser) }

func intPtr(v int) *int { return &v }

// newProject creates a project owned by the project leader with plainID as
// member.
func (f *fixture) newProject(t *testing.T) *model.Project {
	t.Helper()

	start := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	p, err := f.uc.Project.Create(asLeader(), usecase.ProjectInput{
		Name:      "Sommerfest",
		Location:  "Stadtpark",
		StartDate: &start,
	})
	gt.NoError(t, err).Required()

	_, err = f.uc.Project.AddMember(asLeader(), p.ID, plainID)
	gt.NoError(t, err).Required()
	return p
}

func (f *fixture) auditCount(t *testing.T, kind, id string) int {
	t.Helper()
	entries, err := f.repo.Audit().List(context.Background(), kind, id, 0)
	gt.NoError(t, err).Required()
	return len(entries)
}

// recordingNotifier collects high risk notifications
type recordingNotifier struct {
	mu      sync.Mutex
	hazards []*model.Hazard
	done    chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 16)}
}

func (n *recordingNotifier) HighRisk(ctx context.Context, project *model.Project, hazard *model.Hazard) (string, error) {
	n.mu.Lock()
	n.hazards = append(n.hazards, hazard)
	n.mu.Unlock()
	n.done <- struct{}{}
	return "ts", nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.hazards)
}

// failingAudit rejects every audit write, so any commit fails after the
// mutation has been applied
type failingAudit struct {
	*memory.Memory
}

func (r *failingAudit) Audit() interfaces.AuditRepository { return &rejectingAuditRepo{} }

type rejectingAuditRepo struct{}

func (rejectingAuditRepo) Put(context.Context, *model.AuditEntry) error {
	return errAuditDown
}

func (rejectingAuditRepo) List(context.Context, string, string, int) ([]*model.AuditEntry, error) {
	return nil, nil
}

var errAuditDown = &auditError{}

type auditError struct{}

func (*auditError) Error() string { return "audit store unavailable" }
