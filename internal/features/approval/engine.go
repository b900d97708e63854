package approval

import (
	"fmt"
	"time"

	"go-unionreg/internal/features/chain"
)

// ChainSource resolves a workflow type to its chain
type ChainSource interface {
	GetChain(workflowType string) (chain.Definition, error)
}

// Engine applies the sequential approval rules to instances. It holds no
// per-instance state; callers serialize access to a single instance.
type Engine struct {
	chains ChainSource
	now    func() time.Time
}

func NewEngine(chains *chain.Registry) *Engine {
	return &Engine{chains: chains, now: time.Now}
}

// NewEngineWithClock is used where decision timestamps must be deterministic
func NewEngineWithClock(chains ChainSource, now func() time.Time) *Engine {
	return &Engine{chains: chains, now: now}
}

// Create allocates one pending decision per step of the workflow type's chain
func (e *Engine) Create(workflowType string, submissionRef string) (*Instance, error) {
	def, err := e.chains.GetChain(workflowType)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	inst := &Instance{
		WorkflowType:  workflowType,
		SubmissionRef: submissionRef,
		Decisions:     make([]StepDecision, def.Len()),
		CreatedAt:     now,
	}
	for i, step := range def.Steps {
		inst.Decisions[i] = StepDecision{StepIndex: step.StepIndex, Decision: DecisionPending}
	}

	if def.Len() == 0 {
		inst.Status = Approved()
		inst.CompletedAt = &now
		return inst, nil
	}
	inst.Status = PendingStep(0)
	return inst, nil
}

// RecordDecision applies one authority decision and returns the updated
// instance. The instance passed in is left untouched, also on error.
func (e *Engine) RecordDecision(inst *Instance, stepIndex int, decision Decision, actor Identity, comments string) (*Instance, error) {
	if inst.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: status is %s", ErrInstanceTerminated, inst.Status)
	}
	if stepIndex != inst.Status.Step {
		return nil, fmt.Errorf("%w: step %d is awaiting a decision, got %d", ErrInvalidStepOrder, inst.Status.Step, stepIndex)
	}
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidDecision, decision)
	}

	def, err := e.chains.GetChain(inst.WorkflowType)
	if err != nil {
		return nil, err
	}
	if def.Len() != len(inst.Decisions) {
		return nil, fmt.Errorf("%w: chain has %d steps, instance has %d", ErrChainMismatch, def.Len(), len(inst.Decisions))
	}
	step, _ := def.Step(stepIndex)
	if actor.Role != step.AuthorityRole {
		return nil, fmt.Errorf("%w: step %d requires %q, actor holds %q", ErrUnauthorizedAuthority, stepIndex, step.AuthorityRole, actor.Role)
	}

	now := e.now().UTC()
	next := inst.Clone()
	next.Decisions[stepIndex] = StepDecision{
		StepIndex: stepIndex,
		Decision:  decision,
		DecidedBy: actor.ID,
		DecidedAt: &now,
		Comments:  comments,
	}
	next.Status = deriveStatus(next.Decisions)
	if next.Status.IsTerminal() {
		next.CompletedAt = &now
	}
	return next, nil
}

// CurrentStep returns the step awaiting a decision; false once terminal
func (e *Engine) CurrentStep(inst *Instance) (chain.AuthorityStep, bool) {
	if !inst.IsPending() {
		return chain.AuthorityStep{}, false
	}
	def, err := e.chains.GetChain(inst.WorkflowType)
	if err != nil {
		return chain.AuthorityStep{}, false
	}
	return def.Step(inst.Status.Step)
}
