package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
)

type auditRepository struct {
	f *Firestore
}

func (r *auditRepository) Put(ctx context.Context, entry *model.AuditEntry) error {
	return setDoc(ctx, r.f, r.f.collection(collAudit).Doc(entry.ID.String()), entry, "audit entry")
}

// List needs the composite indexes created by the migrate command when a
// filter is given.
func (r *auditRepository) List(ctx context.Context, resourceKind, resourceID string, limit int) ([]*model.AuditEntry, error) {
	q := r.f.collection(collAudit).Query
	if resourceKind != "" {
		q = q.Where("ResourceKind", "==", resourceKind)
	}
	if resourceID != "" {
		q = q.Where("ResourceID", "==", resourceID)
	}
	q = q.OrderBy("CreatedAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return listDocs[model.AuditEntry](ctx, r.f, q, "audit entries")
}
