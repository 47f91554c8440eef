package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// ErrNotFound is returned (wrapped) when a record does not exist
var ErrNotFound = interfaces.ErrNotFound

type memberKey struct {
	projectID types.ProjectID
	userID    types.UserID
}

type assignmentKey struct {
	areaID    types.AreaID
	projectID types.ProjectID
}

type linkKey struct {
	projectID  types.ProjectID
	templateID types.TemplateID
}

// tables holds every record. Stored values are private copies, so a
// shallow clone of the maps is a full snapshot.
type tables struct {
	users        map[types.UserID]*model.User
	projects     map[types.ProjectID]*model.Project
	members      map[memberKey]*model.ProjectMember
	areas        map[types.AreaID]*model.Area
	assignments  map[assignmentKey]*model.AreaAssignment
	templates    map[types.TemplateID]*model.HazardTemplate
	links        map[linkKey]*model.ProjectTemplate
	hazards      map[types.HazardID]*model.Hazard
	participants map[types.ParticipantID]*model.Participant
	briefings    map[types.BriefingID]*model.Briefing
	audit        []*model.AuditEntry
}

func newTables() tables {
	return tables{
		users:        make(map[types.UserID]*model.User),
		projects:     make(map[types.ProjectID]*model.Project),
		members:      make(map[memberKey]*model.ProjectMember),
		areas:        make(map[types.AreaID]*model.Area),
		assignments:  make(map[assignmentKey]*model.AreaAssignment),
		templates:    make(map[types.TemplateID]*model.HazardTemplate),
		links:        make(map[linkKey]*model.ProjectTemplate),
		hazards:      make(map[types.HazardID]*model.Hazard),
		participants: make(map[types.ParticipantID]*model.Participant),
		briefings:    make(map[types.BriefingID]*model.Briefing),
	}
}

func (t tables) clone() tables {
	return tables{
		users:        maps.Clone(t.users),
		projects:     maps.Clone(t.projects),
		members:      maps.Clone(t.members),
		areas:        maps.Clone(t.areas),
		assignments:  maps.Clone(t.assignments),
		templates:    maps.Clone(t.templates),
		links:        maps.Clone(t.links),
		hazards:      maps.Clone(t.hazards),
		participants: maps.Clone(t.participants),
		briefings:    maps.Clone(t.briefings),
		audit:        slices.Clone(t.audit),
	}
}

// store guards tables. mu protects the maps; txMu serialises writers so a
// transaction can roll back to its snapshot without losing other writes.
type store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data tables
}

type ctxTxKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(ctxTxKey{}).(bool)
	return v
}

func (s *store) read() func() {
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *store) write(ctx context.Context) func() {
	joined := inTx(ctx)
	if !joined {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !joined {
			s.txMu.Unlock()
		}
	}
}

type Memory struct {
	store *store

	user        *userRepository
	project     *projectRepository
	area        *areaRepository
	template    *templateRepository
	hazard      *hazardRepository
	participant *participantRepository
	briefing    *briefingRepository
	audit       *auditRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	s := &store{data: newTables()}
	return &Memory{
		store:       s,
		user:        &userRepository{s: s},
		project:     &projectRepository{s: s},
		area:        &areaRepository{s: s},
		template:    &templateRepository{s: s},
		hazard:      &hazardRepository{s: s},
		participant: &participantRepository{s: s},
		briefing:    &briefingRepository{s: s},
		audit:       &auditRepository{s: s},
	}
}

func (m *Memory) User() interfaces.UserRepository               { return m.user }
func (m *Memory) Project() interfaces.ProjectRepository         { return m.project }
func (m *Memory) Area() interfaces.AreaRepository               { return m.area }
func (m *Memory) Template() interfaces.TemplateRepository       { return m.template }
func (m *Memory) Hazard() interfaces.HazardRepository           { return m.hazard }
func (m *Memory) Participant() interfaces.ParticipantRepository { return m.participant }
func (m *Memory) Briefing() interfaces.BriefingRepository       { return m.briefing }
func (m *Memory) Audit() interfaces.AuditRepository             { return m.audit }

// RunInTransaction serialises fn against all other writers and restores
// the state from before fn when it fails.
func (m *Memory) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	m.store.mu.RLock()
	snapshot := m.store.data.clone()
	m.store.mu.RUnlock()

	if err := fn(context.WithValue(ctx, ctxTxKey{}, true)); err != nil {
		m.store.mu.Lock()
		m.store.data = snapshot
		m.store.mu.Unlock()
		return err
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}
