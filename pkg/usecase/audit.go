package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
)

const (
	DefaultAuditLimit = 100
	MaxAuditLimit     = 1000
)

type AuditUseCase struct {
	*base
}

// List returns audit entries newest first. Empty resourceKind or
// resourceID match everything.
func (uc *AuditUseCase) List(ctx context.Context, resourceKind, resourceID string, limit int) ([]*model.AuditEntry, error) {
	if _, err := authorize(ctx, policy.ActionRead, policy.Resource{Kind: policy.KindAudit}); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	limit = min(limit, MaxAuditLimit)

	entries, err := uc.repo.Audit().List(ctx, resourceKind, resourceID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list audit entries",
			goerr.V("resource_kind", resourceKind), goerr.V("resource_id", resourceID))
	}
	return entries, nil
}
