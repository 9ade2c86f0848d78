package ports

import (
	"context"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

// MemorialWorkflowInput is the fd-form submission driving the create-account
// + create-tribute saga.
type MemorialWorkflowInput struct {
	Form domain.MemorialForm
}

// MemorialWorkflowResult reports a completed run. EmailError is set when the
// notification step failed; the run still counts as successful.
type MemorialWorkflowResult struct {
	RunID      string
	Identity   *domain.Identity
	Tribute    *domain.Tribute
	EmailError string
}

// WorkflowService executes multi-step orchestrations against the CMS.
type WorkflowService interface {
	CreateMemorial(ctx context.Context, in MemorialWorkflowInput) (*MemorialWorkflowResult, error)
}
