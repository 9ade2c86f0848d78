package ports

import (
	"context"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

// WorkflowRepository persists the saga audit trail. Writes are best-effort
// from the orchestrator's point of view: a failed insert or update must never
// abort the workflow itself.
type WorkflowRepository interface {
	Insert(ctx context.Context, run *domain.WorkflowRun) error
	Update(ctx context.Context, run *domain.WorkflowRun) error
}
