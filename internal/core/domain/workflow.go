package domain

import "time"

// WorkflowStatus is the lifecycle state of an orchestrated run.
type WorkflowStatus string

const (
	WorkflowPending  WorkflowStatus = "pending"
	WorkflowComplete WorkflowStatus = "complete"
	WorkflowError    WorkflowStatus = "error"
)

// StepOutcome is the recorded result of one workflow step.
type StepOutcome string

const (
	StepOK      StepOutcome = "ok"
	StepFailed  StepOutcome = "failed"
	StepSkipped StepOutcome = "skipped"
)

// WorkflowStep is one entry in a run's audit trail.
type WorkflowStep struct {
	Name    string      `json:"name" bson:"name"`
	Outcome StepOutcome `json:"outcome" bson:"outcome"`
	Detail  string      `json:"detail,omitempty" bson:"detail,omitempty"`
}

// WorkflowRun is the audit record of a multi-step orchestration. The saga has
// no compensating transactions: on a required-step failure earlier remote
// side effects stay in place, and this record is what makes that visible for
// manual follow-up.
type WorkflowRun struct {
	ID          string         `json:"id" bson:"_id"`
	Kind        string         `json:"kind" bson:"kind"`
	Status      WorkflowStatus `json:"status" bson:"status"`
	Steps       []WorkflowStep `json:"steps" bson:"steps"`
	OwnerUserID int64          `json:"owner_user_id,omitempty" bson:"owner_user_id,omitempty"`
	TributeID   int64          `json:"tribute_id,omitempty" bson:"tribute_id,omitempty"`
	EmailError  string         `json:"email_error,omitempty" bson:"email_error,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// RecordStep appends a step outcome to the audit trail.
func (r *WorkflowRun) RecordStep(name string, outcome StepOutcome, detail string) {
	r.Steps = append(r.Steps, WorkflowStep{Name: name, Outcome: outcome, Detail: detail})
}
