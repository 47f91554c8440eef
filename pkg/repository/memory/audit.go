package memory

import (
	"context"

	"github.com/secmon-lab/safetydocs/pkg/domain/model"
)

type auditRepository struct {
	s *store
}

func (r *auditRepository) Put(ctx context.Context, entry *model.AuditEntry) error {
	defer r.s.write(ctx)()

	r.s.data.audit = append(r.s.data.audit, clone(entry))
	return nil
}

func (r *auditRepository) List(ctx context.Context, resourceKind, resourceID string, limit int) ([]*model.AuditEntry, error) {
	defer r.s.read()()

	out := []*model.AuditEntry{}
	for i := len(r.s.data.audit) - 1; i >= 0; i-- {
		e := r.s.data.audit[i]
		if resourceKind != "" && e.ResourceKind != resourceKind {
			continue
		}
		if resourceID != "" && e.ResourceID != resourceID {
			continue
		}
		out = append(out, clone(e))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
