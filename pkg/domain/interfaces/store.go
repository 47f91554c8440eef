package interfaces

import (
	"context"

	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	User() UserRepository
	Project() ProjectRepository
	Area() AreaRepository
	Template() TemplateRepository
	Hazard() HazardRepository
	Participant() ParticipantRepository
	Briefing() BriefingRepository
	Audit() AuditRepository

	// RunInTransaction runs fn as one unit of work. Repository calls made
	// with the context passed to fn are committed together, or not at all
	// when fn returns an error. Calls nested inside fn join the outer
	// transaction. Backends may require all reads to happen before the
	// first write.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	Close() error
}

type UserRepository interface {
	Get(ctx context.Context, id types.UserID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Put(ctx context.Context, user *model.User) error
}

type ProjectRepository interface {
	Get(ctx context.Context, id types.ProjectID) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	Put(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id types.ProjectID) error

	PutMember(ctx context.Context, member *model.ProjectMember) error
	DeleteMember(ctx context.Context, projectID types.ProjectID, userID types.UserID) error
	ListMembers(ctx context.Context, projectID types.ProjectID) ([]*model.ProjectMember, error)
	// ListMemberships returns the memberships of one user
	ListMemberships(ctx context.Context, userID types.UserID) ([]*model.ProjectMember, error)
}

type AreaRepository interface {
	Get(ctx context.Context, id types.AreaID) (*model.Area, error)
	List(ctx context.Context) ([]*model.Area, error)
	Put(ctx context.Context, area *model.Area) error

	// PutAssignment inserts or replaces the assignment of (AreaID, ProjectID)
	PutAssignment(ctx context.Context, assignment *model.AreaAssignment) error
	ListAssignments(ctx context.Context, projectID types.ProjectID) ([]*model.AreaAssignment, error)
	DeleteAssignment(ctx context.Context, areaID types.AreaID, projectID types.ProjectID) error
}

type TemplateRepository interface {
	Get(ctx context.Context, id types.TemplateID) (*model.HazardTemplate, error)
	List(ctx context.Context) ([]*model.HazardTemplate, error)
	Put(ctx context.Context, tmpl *model.HazardTemplate) error
	Delete(ctx context.Context, id types.TemplateID) error

	PutLink(ctx context.Context, link *model.ProjectTemplate) error
	ListLinks(ctx context.Context, projectID types.ProjectID) ([]*model.ProjectTemplate, error)
	DeleteLink(ctx context.Context, projectID types.ProjectID, templateID types.TemplateID) error
}

// HazardRepository stores hazards of both templates and projects. Lists
// are ordered by SortOrder, then CreatedAt.
type HazardRepository interface {
	Get(ctx context.Context, id types.HazardID) (*model.Hazard, error)
	Put(ctx context.Context, hazard *model.Hazard) error
	Delete(ctx context.Context, id types.HazardID) error
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Hazard, error)
	ListByTemplate(ctx context.Context, templateID types.TemplateID) ([]*model.Hazard, error)
}

// ParticipantRepository lists in creation order
type ParticipantRepository interface {
	Get(ctx context.Context, id types.ParticipantID) (*model.Participant, error)
	Put(ctx context.Context, participant *model.Participant) error
	Delete(ctx context.Context, id types.ParticipantID) error
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Participant, error)
}

type BriefingRepository interface {
	Get(ctx context.Context, id types.BriefingID) (*model.Briefing, error)
	Put(ctx context.Context, briefing *model.Briefing) error
	Delete(ctx context.Context, id types.BriefingID) error
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Briefing, error)
}

// AuditRepository is append-only
type AuditRepository interface {
	Put(ctx context.Context, entry *model.AuditEntry) error
	// List returns entries newest first. Empty kind or id match everything.
	List(ctx context.Context, resourceKind, resourceID string, limit int) ([]*model.AuditEntry, error)
}
