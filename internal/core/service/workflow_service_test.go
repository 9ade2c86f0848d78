package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tributestream/livestream-api/internal/core/domain"
	"github.com/tributestream/livestream-api/internal/core/ports"
)

type stubContentGateway struct {
	createCalls int
	metaCalls   int
	created     []domain.NewTribute
	meta        []domain.MetaEntry
	metaTokens  []string

	createID  int64
	createErr error
	metaErr   error
}

func (g *stubContentGateway) ListTributes(_ context.Context, _ ports.ListTributesInput) (*domain.TributePage, error) {
	return &domain.TributePage{}, nil
}

func (g *stubContentGateway) GetTribute(_ context.Context, _ int64) (*domain.Tribute, error) {
	return nil, domain.ErrNotFound
}

func (g *stubContentGateway) GetTributeBySlug(_ context.Context, _ string) (*domain.Tribute, error) {
	return nil, domain.ErrNotFound
}

func (g *stubContentGateway) CreateTribute(_ context.Context, _ string, t domain.NewTribute) (int64, error) {
	g.createCalls++
	if g.createErr != nil {
		return 0, g.createErr
	}
	g.created = append(g.created, t)
	return g.createID, nil
}

func (g *stubContentGateway) UpdateTribute(_ context.Context, _ string, _ int64, _ map[string]any) (*domain.Tribute, error) {
	return nil, domain.ErrNotFound
}

func (g *stubContentGateway) DeleteTribute(_ context.Context, _ string, _ int64) error {
	return nil
}

func (g *stubContentGateway) GetUserMeta(_ context.Context, _ string, _ int64) ([]domain.MetaEntry, error) {
	return g.meta, nil
}

func (g *stubContentGateway) SetUserMeta(_ context.Context, token string, entry domain.MetaEntry) error {
	g.metaCalls++
	if g.metaErr != nil {
		return g.metaErr
	}
	g.meta = append(g.meta, entry)
	g.metaTokens = append(g.metaTokens, token)
	return nil
}

type stubMailer struct {
	sent []domain.Email
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg domain.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type stubRunRepo struct {
	inserts []domain.WorkflowRun
	updates []domain.WorkflowRun
}

func (r *stubRunRepo) Insert(_ context.Context, run *domain.WorkflowRun) error {
	r.inserts = append(r.inserts, *run)
	return nil
}

func (r *stubRunRepo) Update(_ context.Context, run *domain.WorkflowRun) error {
	r.updates = append(r.updates, *run)
	return nil
}

func memorialTestForm() domain.MemorialForm {
	var f domain.MemorialForm
	f.Director.FirstName = "Dana"
	f.Director.LastName = "Director"
	f.FamilyMember.FirstName = "Fay"
	f.FamilyMember.LastName = "Family"
	f.Deceased.FirstName = "John"
	f.Deceased.LastName = "Doe"
	f.Contact.Email = "fay@example.com"
	f.Contact.Phone = "555-0100"
	f.Memorial.LocationName = "Oak Chapel"
	return f
}

func newMemorialFixture() (*WorkflowService, *stubIdentityGateway, *stubContentGateway, *stubMailer, *stubRunRepo) {
	gw := &stubIdentityGateway{
		registerID:  100,
		loginResult: &ports.LoginResult{Token: "newtok", DisplayName: "fay@example.com"},
		caps:        &ports.Capabilities{UserID: 100, Roles: []string{"subscriber"}},
	}
	content := &stubContentGateway{createID: 555}
	mailer := &stubMailer{}
	runs := &stubRunRepo{}
	auth := NewAuthService(gw, nil, zerolog.Nop())
	svc := NewWorkflowService(gw, content, auth, mailer, runs, "staff@example.com", zerolog.Nop())
	return svc, gw, content, mailer, runs
}

func TestCreateMemorial_HappyPath(t *testing.T) {
	svc, gw, content, mailer, runs := newMemorialFixture()

	res, err := svc.CreateMemorial(context.Background(), ports.MemorialWorkflowInput{Form: memorialTestForm()})
	if err != nil {
		t.Fatalf("CreateMemorial returned error: %v", err)
	}

	if gw.registerCalls != 1 || gw.loginCalls != 1 {
		t.Fatalf("expected 1 register + 1 login, got %d/%d", gw.registerCalls, gw.loginCalls)
	}
	if content.metaCalls != 1 || content.createCalls != 1 {
		t.Fatalf("expected 1 meta write + 1 tribute create, got %d/%d", content.metaCalls, content.createCalls)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 notification emails, got %d", len(mailer.sent))
	}
	if mailer.sent[0].To != "staff@example.com" {
		t.Fatalf("first email should go to staff, got %q", mailer.sent[0].To)
	}
	if mailer.sent[1].To != "fay@example.com" {
		t.Fatalf("second email should go to the contact, got %q", mailer.sent[1].To)
	}

	if res.Tribute == nil || res.Tribute.Slug != "john_doe" {
		t.Fatalf("unexpected tribute: %+v", res.Tribute)
	}
	if res.Tribute.ID != 555 {
		t.Fatalf("expected tribute id from gateway, got %d", res.Tribute.ID)
	}
	if res.Identity == nil || res.Identity.Token != "newtok" {
		t.Fatalf("expected identity for the new account, got %+v", res.Identity)
	}
	if res.EmailError != "" {
		t.Fatalf("unexpected email error: %q", res.EmailError)
	}

	// Metadata write carries the new account's token and the full form.
	if content.metaTokens[0] != "newtok" {
		t.Fatalf("metadata must use the new session token, got %q", content.metaTokens[0])
	}
	entry := content.meta[0]
	if entry.Key != domain.MetaKeyMemorialForm || entry.OwnerUserID != 100 {
		t.Fatalf("unexpected meta entry: %+v", entry)
	}
	var round domain.MemorialForm
	if err := json.Unmarshal(entry.Value, &round); err != nil {
		t.Fatalf("meta value not valid JSON: %v", err)
	}
	if round.Deceased.FirstName != "John" {
		t.Fatalf("form did not round-trip: %+v", round)
	}

	if len(runs.inserts) != 1 || len(runs.updates) != 1 {
		t.Fatalf("expected 1 insert + 1 update of the run log, got %d/%d", len(runs.inserts), len(runs.updates))
	}
	if runs.updates[0].Status != domain.WorkflowComplete {
		t.Fatalf("run should close complete, got %s", runs.updates[0].Status)
	}
}

func TestCreateMemorial_PriorSessionLoggedOut(t *testing.T) {
	svc, gw, _, _, _ := newMemorialFixture()

	ctx := WithPriorToken(context.Background(), "oldtok")
	if _, err := svc.CreateMemorial(ctx, ports.MemorialWorkflowInput{Form: memorialTestForm()}); err != nil {
		t.Fatalf("CreateMemorial returned error: %v", err)
	}

	if gw.logoutCalls != 1 || gw.logoutTokens[0] != "oldtok" {
		t.Fatalf("expected prior token logout, calls=%d tokens=%v", gw.logoutCalls, gw.logoutTokens)
	}
}

func TestCreateMemorial_EmailFailureStillSucceeds(t *testing.T) {
	svc, _, content, mailer, runs := newMemorialFixture()
	mailer.err = errors.New("sendgrid 503")

	res, err := svc.CreateMemorial(context.Background(), ports.MemorialWorkflowInput{Form: memorialTestForm()})
	if err != nil {
		t.Fatalf("email failure must not fail the workflow: %v", err)
	}
	if res.EmailError == "" {
		t.Fatalf("expected the email error to be reported")
	}
	if res.Tribute == nil || content.createCalls != 1 {
		t.Fatalf("tribute creation should have happened")
	}
	if runs.updates[0].Status != domain.WorkflowComplete {
		t.Fatalf("run should still close complete, got %s", runs.updates[0].Status)
	}
	if runs.updates[0].EmailError == "" {
		t.Fatalf("run log should record the email error")
	}
}

func TestCreateMemorial_RegisterFailureIsMapped(t *testing.T) {
	svc, gw, content, mailer, runs := newMemorialFixture()
	gw.registerErr = &domain.UpstreamError{StatusCode: 400, Message: "Email already registered for this site"}

	_, err := svc.CreateMemorial(context.Background(), ports.MemorialWorkflowInput{Form: memorialTestForm()})
	if err == nil {
		t.Fatalf("expected register failure to abort the run")
	}

	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(ue.Message, "already registered") || !strings.Contains(ue.Message, "try logging in") {
		t.Fatalf("error not mapped to friendly text: %q", ue.Message)
	}

	if content.createCalls != 0 || len(mailer.sent) != 0 {
		t.Fatalf("no downstream steps should run after a register failure")
	}
	if runs.updates[0].Status != domain.WorkflowError {
		t.Fatalf("run should close with error status, got %s", runs.updates[0].Status)
	}
}

func TestCreateMemorial_CapabilityFailureDegrades(t *testing.T) {
	svc, gw, _, _, _ := newMemorialFixture()
	gw.capsErr = errors.New("cap endpoint down")

	res, err := svc.CreateMemorial(context.Background(), ports.MemorialWorkflowInput{Form: memorialTestForm()})
	if err != nil {
		t.Fatalf("capability failure must not abort: %v", err)
	}
	if res.Identity.IsAdmin() {
		t.Fatalf("degraded identity must not be admin")
	}
	if res.Identity.UserID != 100 {
		t.Fatalf("user id should fall back to the registration id, got %d", res.Identity.UserID)
	}
}

func TestCreateMemorial_MissingFields(t *testing.T) {
	svc, gw, _, _, runs := newMemorialFixture()

	form := memorialTestForm()
	form.Contact.Email = ""

	_, err := svc.CreateMemorial(context.Background(), ports.MemorialWorkflowInput{Form: form})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gw.registerCalls != 0 || len(runs.inserts) != 0 {
		t.Fatalf("nothing should run for an invalid form")
	}
}

func TestCreateMemorial_TributeFailureAborts(t *testing.T) {
	svc, _, content, mailer, runs := newMemorialFixture()
	content.createErr = &domain.UpstreamError{StatusCode: 500, Message: "could not create tribute"}

	_, err := svc.CreateMemorial(context.Background(), ports.MemorialWorkflowInput{Form: memorialTestForm()})
	if err == nil {
		t.Fatalf("expected tribute failure to abort")
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no emails after a failed tribute create")
	}
	if runs.updates[0].Status != domain.WorkflowError {
		t.Fatalf("run should close with error status, got %s", runs.updates[0].Status)
	}
}
