package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tributestream/livestream-api/internal/metrics"
	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

const workflowKindMemorial = "memorial"

// WorkflowService runs the create-account + create-tribute saga. Steps are
// either required (failure aborts the run and surfaces the remote message) or
// best-effort (failure is logged and the run continues). No compensation is
// attempted for remote side effects of earlier steps; each run is recorded in
// the run log so a partial failure can be followed up manually.
type WorkflowService struct {
	identity   ports.IdentityGateway
	content    ports.ContentGateway
	auth       *AuthService
	mailer     ports.Mailer
	runs       ports.WorkflowRepository
	staffEmail string
	log        zerolog.Logger
}

func NewWorkflowService(
	identity ports.IdentityGateway,
	content ports.ContentGateway,
	auth *AuthService,
	mailer ports.Mailer,
	runs ports.WorkflowRepository,
	staffEmail string,
	log zerolog.Logger,
) *WorkflowService {
	return &WorkflowService{
		identity:   identity,
		content:    content,
		auth:       auth,
		mailer:     mailer,
		runs:       runs,
		staffEmail: staffEmail,
		log:        log,
	}
}

// CreateMemorial executes the fd-form sequence:
//
//	1. best-effort: invalidate any existing session
//	2. required:    generate credentials
//	3. required:    register the account (CMS errors mapped to friendly text)
//	4. required:    authenticate the fresh account
//	5. best-effort: fetch roles/capabilities
//	6. required:    persist the form as memorial_form_data metadata
//	7. required:    create the tribute record
//	8. best-effort: notify staff and the new user
//
// A step-8 failure does not roll back steps 2-7: the result is still
// successful and carries the email error separately.
func (s *WorkflowService) CreateMemorial(ctx context.Context, in ports.MemorialWorkflowInput) (*ports.MemorialWorkflowResult, error) {
	form := in.Form
	if form.Contact.Email == "" || form.Director.FirstName == "" ||
		form.Director.LastName == "" || form.Memorial.LocationName == "" {
		return nil, domain.Validationf("required fields are missing")
	}
	if err := ValidateEmail(form.Contact.Email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	run := &domain.WorkflowRun{
		ID:        uuid.NewString(),
		Kind:      workflowKindMemorial,
		Status:    domain.WorkflowPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.recordInsert(ctx, run)

	// Step 1, best-effort: clear any session tied to the submitting browser
	// so the new identity starts clean.
	if prior, ok := priorToken(ctx); ok {
		s.auth.Logout(ctx, prior)
		run.RecordStep("logout_existing", domain.StepOK, "")
	} else {
		run.RecordStep("logout_existing", domain.StepSkipped, "no existing session")
	}

	// Step 2: credentials.
	password := GeneratePassword()
	run.RecordStep("generate_password", domain.StepOK, "")

	// Step 3: register. The account username is the contact email.
	userID, err := s.identity.Register(ctx, ports.RegisterInput{
		Username: form.Contact.Email,
		Email:    form.Contact.Email,
		Password: password,
	})
	if err != nil {
		return nil, s.failRun(ctx, run, "register", mapRegisterError(err))
	}
	run.OwnerUserID = userID
	run.RecordStep("register", domain.StepOK, "")

	// Step 4: authenticate the new account.
	login, err := s.identity.Login(ctx, form.Contact.Email, password)
	if err != nil {
		return nil, s.failRun(ctx, run, "authenticate", err)
	}
	run.RecordStep("authenticate", domain.StepOK, "")

	identity := &domain.Identity{
		Token:       login.Token,
		UserID:      userID,
		DisplayName: login.DisplayName,
		Email:       login.Email,
		Nicename:    login.Nicename,
		Roles:       []string{},
	}

	// Step 5, best-effort: roles/capabilities. On failure the identity stays
	// non-admin.
	if caps, err := s.auth.Capabilities(ctx, login.Token); err != nil {
		s.log.Warn().Err(err).Str("run_id", run.ID).Msg("capability fetch failed, continuing with empty roles")
		run.RecordStep("fetch_capabilities", domain.StepFailed, err.Error())
		metrics.WorkflowStepFailuresTotal.WithLabelValues("fetch_capabilities", "best_effort").Inc()
	} else {
		if caps.UserID != 0 {
			identity.UserID = caps.UserID
			run.OwnerUserID = caps.UserID
		}
		identity.Roles = caps.Roles
		identity.Capabilities = caps.Capabilities
		run.RecordStep("fetch_capabilities", domain.StepOK, "")
	}

	// Step 6: persist the submitted form as user metadata.
	formJSON, err := json.Marshal(form)
	if err != nil {
		return nil, s.failRun(ctx, run, "persist_metadata", err)
	}
	err = s.content.SetUserMeta(ctx, identity.Token, domain.MetaEntry{
		OwnerUserID: identity.UserID,
		Key:         domain.MetaKeyMemorialForm,
		Value:       formJSON,
	})
	if err != nil {
		return nil, s.failRun(ctx, run, "persist_metadata", err)
	}
	run.RecordStep("persist_metadata", domain.StepOK, "")

	// Step 7: create the tribute record.
	slug := domain.TributeSlug(form.Deceased.FirstName, form.Deceased.LastName)
	tributeID, err := s.content.CreateTribute(ctx, identity.Token, domain.NewTribute{
		LovedOneName: form.Deceased.FirstName + " " + form.Deceased.LastName,
		Slug:         slug,
		OwnerUserID:  identity.UserID,
		PhoneNumber:  form.Contact.Phone,
	})
	if err != nil {
		return nil, s.failRun(ctx, run, "create_tribute", err)
	}
	run.TributeID = tributeID
	run.RecordStep("create_tribute", domain.StepOK, "")

	result := &ports.MemorialWorkflowResult{
		RunID:    run.ID,
		Identity: identity,
		Tribute: &domain.Tribute{
			ID:           tributeID,
			LovedOneName: form.Deceased.FirstName + " " + form.Deceased.LastName,
			Slug:         slug,
			OwnerUserID:  identity.UserID,
			PhoneNumber:  form.Contact.Phone,
		},
	}

	// Step 8, best-effort: notifications.
	if err := s.sendNotifications(ctx, form, password); err != nil {
		s.log.Error().Err(err).Str("run_id", run.ID).Msg("notification emails failed")
		run.RecordStep("send_emails", domain.StepFailed, err.Error())
		run.EmailError = err.Error()
		result.EmailError = err.Error()
		metrics.WorkflowStepFailuresTotal.WithLabelValues("send_emails", "best_effort").Inc()
	} else {
		run.RecordStep("send_emails", domain.StepOK, "")
	}

	run.Status = domain.WorkflowComplete
	s.recordUpdate(ctx, run)
	metrics.WorkflowRunsTotal.WithLabelValues(workflowKindMemorial, "complete").Inc()

	return result, nil
}

func (s *WorkflowService) sendNotifications(ctx context.Context, form domain.MemorialForm, password string) error {
	staff := memorialRequestEmail(form)
	staff.To = s.staffEmail
	if err := s.mailer.Send(ctx, staff); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("staff", "error").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues("staff", "ok").Inc()

	welcome := welcomeEmail(form.FamilyMember.FirstName, form.FamilyMember.LastName, form.Contact.Email, password)
	welcome.To = form.Contact.Email
	if err := s.mailer.Send(ctx, welcome); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("user", "error").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues("user", "ok").Inc()
	return nil
}

// failRun records a required-step failure and closes the run. The created CMS
// user, if any, is left in place.
func (s *WorkflowService) failRun(ctx context.Context, run *domain.WorkflowRun, step string, err error) error {
	run.RecordStep(step, domain.StepFailed, err.Error())
	run.Status = domain.WorkflowError
	s.recordUpdate(ctx, run)
	metrics.WorkflowStepFailuresTotal.WithLabelValues(step, "required").Inc()
	metrics.WorkflowRunsTotal.WithLabelValues(workflowKindMemorial, "error").Inc()
	return err
}

// Run-log writes never abort the workflow.
func (s *WorkflowService) recordInsert(ctx context.Context, run *domain.WorkflowRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Insert(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("run_id", run.ID).Msg("workflow run insert failed")
	}
}

func (s *WorkflowService) recordUpdate(ctx context.Context, run *domain.WorkflowRun) {
	if s.runs == nil {
		return
	}
	run.UpdatedAt = time.Now().UTC()
	if err := s.runs.Update(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("run_id", run.ID).Msg("workflow run update failed")
	}
}

type priorTokenKey struct{}

// WithPriorToken stashes the submitting browser's current session token so
// step 1 can invalidate it.
func WithPriorToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, priorTokenKey{}, token)
}

func priorToken(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(priorTokenKey{}).(string)
	return tok, ok && tok != ""
}
