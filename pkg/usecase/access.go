package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/auth"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// base is shared by every use case
type base struct {
	repo interfaces.Repository
	now  func() time.Time
}

func actorFrom(ctx context.Context) (*auth.Actor, error) {
	actor := auth.ActorFromContext(ctx)
	if actor == nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "no actor in context")
	}
	return actor, nil
}

// authorize asks the policy and returns the actor when allowed
func authorize(ctx context.Context, action policy.Action, res policy.Resource) (*auth.Actor, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	if d := policy.Evaluate(actor, action, res); !d.Allowed {
		return nil, goerr.Wrap(ErrPermissionDenied, "action not allowed",
			goerr.V("action", action),
			goerr.V("kind", res.Kind),
			goerr.V(UserIDKey, actor.UserID),
			goerr.V(ReasonKey, d.Reason),
		)
	}
	return actor, nil
}

// projectResource describes the relation between the actor and a project
func (b *base) projectResource(ctx context.Context, kind policy.Kind, project *model.Project) (policy.Resource, error) {
	res := policy.Resource{Kind: kind, CreatedBy: project.CreatedBy}

	actor := auth.ActorFromContext(ctx)
	if actor == nil || actor.Role == types.RoleAdmin || actor.UserID == project.CreatedBy {
		return res, nil
	}

	members, err := b.repo.Project().ListMembers(ctx, project.ID)
	if err != nil {
		return res, goerr.Wrap(err, "failed to list project members", goerr.V(ProjectIDKey, project.ID))
	}
	for _, m := range members {
		if m.UserID == actor.UserID {
			res.IsMember = true
			break
		}
	}
	return res, nil
}

// authorizeProject loads the project and checks action against it
func (b *base) authorizeProject(ctx context.Context, projectID types.ProjectID, kind policy.Kind, action policy.Action) (*model.Project, *auth.Actor, error) {
	if _, err := actorFrom(ctx); err != nil {
		return nil, nil, err
	}

	project, err := b.repo.Project().Get(ctx, projectID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to get project", goerr.V(ProjectIDKey, projectID))
	}

	res, err := b.projectResource(ctx, kind, project)
	if err != nil {
		return nil, nil, err
	}

	actor, err := authorize(ctx, action, res)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "project access denied", goerr.V(ProjectIDKey, projectID))
	}
	return project, actor, nil
}

// commit runs fn and writes entry in one transaction
func (b *base) commit(ctx context.Context, entry *model.AuditEntry, fn func(ctx context.Context) error) error {
	return b.repo.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return err
		}
		if err := b.repo.Audit().Put(ctx, entry); err != nil {
			return goerr.Wrap(err, "failed to write audit entry")
		}
		return nil
	})
}

// Resource kinds recorded in the audit log
const (
	ResourceUser        = "user"
	ResourceProject     = "project"
	ResourceArea        = "area"
	ResourceTemplate    = "template"
	ResourceHazard      = "hazard"
	ResourceParticipant = "participant"
	ResourceBriefing    = "briefing"
)

func (b *base) audit(actor *auth.Actor, action, kind, id, detail string) *model.AuditEntry {
	return &model.AuditEntry{
		ID:           types.NewAuditID(),
		ActorID:      actor.UserID,
		Action:       action,
		ResourceKind: kind,
		ResourceID:   id,
		Detail:       detail,
		CreatedAt:    b.now(),
	}
}

func invalid(msg string, field string) error {
	return goerr.Wrap(ErrInvalidInput, msg, goerr.V(FieldKey, field))
}

func isNotFound(err error) bool {
	return errors.Is(err, interfaces.ErrNotFound)
}
