package review

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	common_models "go-unionreg/internal/common/models"
	"go-unionreg/internal/features/approval"
	"go-unionreg/internal/features/chain"
	"go-unionreg/internal/features/notification"
	"go-unionreg/internal/features/quorum"
	"go-unionreg/internal/features/validation"

	"go.uber.org/zap"
)

const auditModule = "review"

// AuditLogger records who changed what. audit.AuditService satisfies it.
type AuditLogger interface {
	LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, actorID string, changes map[string]common_models.Change) error
}

// Notifier is told about every review status transition
type Notifier interface {
	NotifyStatusChange(ctx context.Context, change notification.StatusChange) error
}

// Coordinator moves submissions through validation and their approval chain.
// The submission status is never stored; it is projected from the instance
// each time it is read.
type Coordinator struct {
	submissions SubmissionRepository
	instances   approval.InstanceStore
	ledger      validation.Ledger
	chains      *chain.Registry
	engine      *approval.Engine
	locker      *approval.Locker
	audit       AuditLogger
	notifier    Notifier
	logger      *zap.Logger
	now         func() time.Time
}

func NewCoordinator(
	submissions SubmissionRepository,
	instances approval.InstanceStore,
	ledger validation.Ledger,
	chains *chain.Registry,
	engine *approval.Engine,
	locker *approval.Locker,
	audit AuditLogger,
	notifier Notifier,
	logger *zap.Logger,
) *Coordinator {
	return &Coordinator{
		submissions: submissions,
		instances:   instances,
		ledger:      ledger,
		chains:      chains,
		engine:      engine,
		locker:      locker,
		audit:       audit,
		notifier:    notifier,
		logger:      logger.Named("review"),
		now:         time.Now,
	}
}

// RegisterSubmission validates and stores a new submission in draft
func (c *Coordinator) RegisterSubmission(ctx context.Context, s *Submission) error {
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidSubmission)
	}
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSubmission, s.Kind)
	}
	if s.WorkflowType == "" {
		s.WorkflowType = defaultWorkflow[s.Kind]
	}
	if _, err := c.chains.GetChain(s.WorkflowType); err != nil {
		return err
	}
	if s.Turnout != nil {
		if _, err := quorum.Evaluate(s.Turnout.Eligible, s.Turnout.Present, 0); err != nil {
			return fmt.Errorf("%w: turnout: %w", ErrInvalidSubmission, err)
		}
	}

	now := c.now().UTC()
	s.InstanceID = ""
	s.CreatedAt = now
	s.UpdatedAt = now
	if err := c.submissions.Create(ctx, s); err != nil {
		return err
	}

	c.logAudit(ctx, common_models.AuditActionSubmission, s.ID.Hex(), s.SubmittedBy, map[string]common_models.Change{
		"submission": {New: s},
	})
	c.logger.Info("submission registered",
		zap.String("submission_id", s.ID.Hex()),
		zap.String("workflow_type", s.WorkflowType),
	)
	return nil
}

func (c *Coordinator) GetSubmission(ctx context.Context, submissionID string) (*Submission, error) {
	return c.submissions.Get(ctx, submissionID)
}

// AddIssue records a validation issue against an existing submission
func (c *Coordinator) AddIssue(ctx context.Context, submissionID string, issue validation.Issue, actorID string) (string, error) {
	if _, err := c.submissions.Get(ctx, submissionID); err != nil {
		return "", err
	}
	id, err := c.ledger.AddIssue(ctx, submissionID, issue)
	if err != nil {
		return "", err
	}
	c.logAudit(ctx, common_models.AuditActionIssue, submissionID, actorID, map[string]common_models.Change{
		"issue": {New: id},
	})
	return id, nil
}

func (c *Coordinator) ListIssues(ctx context.Context, submissionID string, filter validation.Filter) ([]validation.Issue, error) {
	if _, err := c.submissions.Get(ctx, submissionID); err != nil {
		return nil, err
	}
	return c.ledger.ListIssues(ctx, submissionID, filter)
}

func (c *Coordinator) ResolveIssue(ctx context.Context, issueID string, actorID string) error {
	if err := c.ledger.MarkResolved(ctx, issueID); err != nil {
		return err
	}
	c.logAudit(ctx, common_models.AuditActionIssue, issueID, actorID, map[string]common_models.Change{
		"resolved": {Old: false, New: true},
	})
	return nil
}

// ImportMembershipList runs the xlsx ingester for a membership list submission
func (c *Coordinator) ImportMembershipList(ctx context.Context, submissionID string, file io.Reader, declaredTotal int, actorID string) (*validation.IngestReport, error) {
	s, err := c.submissions.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if s.Kind != KindMembershipList {
		return nil, fmt.Errorf("%w: %s is a %s, not a membership list", ErrInvalidSubmission, submissionID, s.Kind)
	}

	report, err := validation.IngestMembershipList(ctx, c.ledger, submissionID, file, declaredTotal)
	if err != nil {
		return nil, err
	}

	c.logAudit(ctx, common_models.AuditActionIngest, submissionID, actorID, map[string]common_models.Change{
		"rows":   {New: report.Rows},
		"issues": {New: len(report.Issues)},
	})
	c.logger.Info("membership list imported",
		zap.String("submission_id", submissionID),
		zap.Int("rows", report.Rows),
		zap.Int("issues", len(report.Issues)),
	)
	return report, nil
}

// BeginReview opens the approval chain for a submission. Unresolved error
// issues block it and are returned in a *NotReviewableError.
func (c *Coordinator) BeginReview(ctx context.Context, submissionID string, actor approval.Identity) (*approval.Instance, error) {
	unlock := c.locker.Lock("submission:" + submissionID)
	defer unlock()

	s, err := c.submissions.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if s.InstanceID != "" {
		return nil, fmt.Errorf("%w: %s", ErrReviewAlreadyStarted, submissionID)
	}

	blocking, err := c.ledger.BlockingIssues(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if len(blocking) > 0 {
		return nil, &NotReviewableError{SubmissionID: submissionID, Issues: blocking}
	}

	inst, err := c.engine.Create(s.WorkflowType, submissionID)
	if err != nil {
		return nil, err
	}
	if err := c.instances.Create(ctx, inst); err != nil {
		return nil, err
	}
	if err := c.submissions.LinkInstance(ctx, submissionID, inst.ID.Hex()); err != nil {
		if delErr := c.instances.Delete(ctx, inst.ID.Hex()); delErr != nil {
			c.logger.Error("failed to remove unlinked workflow instance",
				zap.String("submission_id", submissionID),
				zap.String("instance_id", inst.ID.Hex()),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	newStatus := ProjectStatus(inst)
	c.logAudit(ctx, common_models.AuditActionReview, submissionID, actor.ID, map[string]common_models.Change{
		"status": {Old: StatusDraft, New: newStatus},
	})
	c.notify(ctx, s, inst, StatusDraft, newStatus, actor)
	c.logger.Info("review started",
		zap.String("submission_id", submissionID),
		zap.String("actor_id", actor.ID),
		zap.String("status", inst.Status.String()),
	)
	return inst, nil
}

// Decide records one authority decision on the submission's instance. The
// load, check and write happen under the instance lock; the store's version
// check catches writers in other processes.
func (c *Coordinator) Decide(ctx context.Context, submissionID string, stepIndex int, decision approval.Decision, actor approval.Identity, comments string) (*approval.Instance, error) {
	s, err := c.submissions.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if s.InstanceID == "" {
		return nil, fmt.Errorf("%w: %s", ErrReviewNotStarted, submissionID)
	}

	unlock := c.locker.Lock(s.InstanceID)
	defer unlock()

	current, err := c.instances.Get(ctx, s.InstanceID)
	if err != nil {
		return nil, err
	}

	next, err := c.engine.RecordDecision(current, stepIndex, decision, actor, comments)
	if err != nil {
		return nil, err
	}

	if decision == approval.DecisionApproved && current.IsFinalStep(stepIndex) {
		if err := c.checkQuorum(s); err != nil {
			return nil, err
		}
	}

	if err := c.instances.Update(ctx, next); err != nil {
		return nil, err
	}

	oldStatus, newStatus := ProjectStatus(current), ProjectStatus(next)
	c.logAudit(ctx, common_models.AuditActionApproval, submissionID, actor.ID, map[string]common_models.Change{
		fmt.Sprintf("step_%d", stepIndex): {Old: approval.DecisionPending, New: decision},
		"status":                          {Old: oldStatus, New: newStatus},
	})
	c.notify(ctx, s, next, oldStatus, newStatus, actor)
	c.logger.Info("decision recorded",
		zap.String("submission_id", submissionID),
		zap.String("actor_id", actor.ID),
		zap.Int("step", stepIndex),
		zap.String("decision", string(decision)),
		zap.String("status", next.Status.String()),
	)
	return next, nil
}

// checkQuorum gates the final approval of chains that declare a quorum
func (c *Coordinator) checkQuorum(s *Submission) error {
	def, err := c.chains.GetChain(s.WorkflowType)
	if err != nil {
		return err
	}
	if !def.RequiresQuorum() {
		return nil
	}
	if s.Turnout == nil {
		return fmt.Errorf("%w: no turnout recorded for %s", ErrQuorumNotMet, s.ID.Hex())
	}
	res, err := quorum.Evaluate(s.Turnout.Eligible, s.Turnout.Present, def.QuorumPercentage)
	if err != nil {
		return err
	}
	if !res.IsMet {
		return fmt.Errorf("%w: turnout %.1f%% is below %.1f%%, %d more needed",
			ErrQuorumNotMet, res.DisplayTurnout(), def.QuorumPercentage, res.ShortfallCount)
	}
	return nil
}

// GetReviewState assembles the submission, its instance and its issues
func (c *Coordinator) GetReviewState(ctx context.Context, submissionID string) (*ReviewState, error) {
	s, err := c.submissions.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	issues, err := c.ledger.ListIssues(ctx, submissionID, validation.Filter{})
	if err != nil {
		return nil, err
	}

	state := &ReviewState{Submission: s, Issues: issues, Status: StatusDraft}

	if s.InstanceID != "" {
		inst, err := c.instances.Get(ctx, s.InstanceID)
		if err != nil {
			return nil, err
		}
		state.Instance = inst
		state.Status = ProjectStatus(inst)
		if step, ok := c.engine.CurrentStep(inst); ok {
			state.CurrentStep = &step
		}
	}

	if def, err := c.chains.GetChain(s.WorkflowType); err == nil && def.RequiresQuorum() && s.Turnout != nil {
		if res, err := quorum.Evaluate(s.Turnout.Eligible, s.Turnout.Present, def.QuorumPercentage); err == nil {
			state.Quorum = &res
		}
	}
	return state, nil
}

// ListUnderReview returns every instance still waiting on an authority
func (c *Coordinator) ListUnderReview(ctx context.Context) ([]approval.Instance, error) {
	return c.instances.ListPending(ctx)
}

func (c *Coordinator) notify(ctx context.Context, s *Submission, inst *approval.Instance, oldStatus, newStatus ReviewStatus, actor approval.Identity) {
	if c.notifier == nil {
		return
	}
	change := notification.StatusChange{
		SubmissionRef: s.ID.Hex(),
		Title:         s.Title,
		WorkflowType:  s.WorkflowType,
		OldStatus:     string(oldStatus),
		NewStatus:     string(newStatus),
		ActorID:       actor.ID,
		SubmittedBy:   s.SubmittedBy,
	}
	if step, ok := c.engine.CurrentStep(inst); ok {
		change.NextRole = step.AuthorityRole
		change.NextLabel = step.DisplayLabel
	}
	if err := c.notifier.NotifyStatusChange(ctx, change); err != nil {
		c.logger.Error("failed to send notification",
			zap.String("submission_id", s.ID.Hex()),
			zap.Error(err),
		)
	}
}

func (c *Coordinator) logAudit(ctx context.Context, action common_models.AuditAction, recordID, actorID string, changes map[string]common_models.Change) {
	if c.audit == nil {
		return
	}
	if err := c.audit.LogChange(ctx, action, auditModule, recordID, actorID, changes); err != nil {
		c.logger.Error("failed to write audit log",
			zap.String("action", string(action)),
			zap.String("record_id", recordID),
			zap.Error(err),
		)
	}
}
