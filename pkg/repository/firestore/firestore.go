package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
)

// ErrNotFound is returned (wrapped) when a document does not exist
var ErrNotFound = interfaces.ErrNotFound

// Collection names without prefix
const (
	collUsers        = "users"
	collProjects     = "projects"
	collMembers      = "project_members"
	collAreas        = "areas"
	collAssignments  = "area_assignments"
	collTemplates    = "hazard_templates"
	collLinks        = "project_templates"
	collHazards      = "hazards"
	collParticipants = "participants"
	collBriefings    = "briefings"
	collAudit        = "audit_log"
)

type Firestore struct {
	client           *firestore.Client
	collectionPrefix string

	user        *userRepository
	project     *projectRepository
	area        *areaRepository
	template    *templateRepository
	hazard      *hazardRepository
	participant *participantRepository
	briefing    *briefingRepository
	audit       *auditRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix isolates all collections under a prefix, used by
// tests that share one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

// New connects to Firestore. An empty databaseID selects the default
// database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{client: client}
	for _, opt := range opts {
		opt(f)
	}

	f.user = &userRepository{f: f}
	f.project = &projectRepository{f: f}
	f.area = &areaRepository{f: f}
	f.template = &templateRepository{f: f}
	f.hazard = &hazardRepository{f: f}
	f.participant = &participantRepository{f: f}
	f.briefing = &briefingRepository{f: f}
	f.audit = &auditRepository{f: f}

	return f, nil
}

func (f *Firestore) User() interfaces.UserRepository               { return f.user }
func (f *Firestore) Project() interfaces.ProjectRepository         { return f.project }
func (f *Firestore) Area() interfaces.AreaRepository               { return f.area }
func (f *Firestore) Template() interfaces.TemplateRepository       { return f.template }
func (f *Firestore) Hazard() interfaces.HazardRepository           { return f.hazard }
func (f *Firestore) Participant() interfaces.ParticipantRepository { return f.participant }
func (f *Firestore) Briefing() interfaces.BriefingRepository       { return f.briefing }
func (f *Firestore) Audit() interfaces.AuditRepository             { return f.audit }

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func (f *Firestore) collection(name string) *firestore.CollectionRef {
	return f.client.Collection(CollectionName(f.collectionPrefix, name))
}

// AuditCollection is the collection that needs composite indexes
const AuditCollection = collAudit

// CollectionName returns the stored name of a collection
func CollectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
