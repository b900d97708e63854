package approval

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decision is the outcome recorded for one step
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// StatusKind is the coarse aggregate state of an instance
type StatusKind string

const (
	StatusPendingStep StatusKind = "pending_step"
	StatusApproved    StatusKind = "approved"
	StatusRejected    StatusKind = "rejected"
)

// AggregateStatus is derived from the step decisions. Step is the pending
// step for StatusPendingStep and the rejecting step for StatusRejected.
type AggregateStatus struct {
	Kind StatusKind `bson:"kind" json:"kind"`
	Step int        `bson:"step" json:"step"`
}

func PendingStep(n int) AggregateStatus { return AggregateStatus{Kind: StatusPendingStep, Step: n} }
func RejectedAt(n int) AggregateStatus  { return AggregateStatus{Kind: StatusRejected, Step: n} }
func Approved() AggregateStatus         { return AggregateStatus{Kind: StatusApproved} }

// IsTerminal reports whether no further decisions are accepted
func (s AggregateStatus) IsTerminal() bool {
	return s.Kind == StatusApproved || s.Kind == StatusRejected
}

func (s AggregateStatus) String() string {
	switch s.Kind {
	case StatusPendingStep:
		return fmt.Sprintf("pending_step(%d)", s.Step)
	case StatusRejected:
		return fmt.Sprintf("rejected(%d)", s.Step)
	default:
		return string(s.Kind)
	}
}

// StepDecision is the decision slot for one AuthorityStep of an instance
type StepDecision struct {
	StepIndex int        `bson:"step_index" json:"step_index"`
	Decision  Decision   `bson:"decision" json:"decision"`
	DecidedBy string     `bson:"decided_by,omitempty" json:"decided_by,omitempty"` // Identity ID, lookup only
	DecidedAt *time.Time `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
	Comments  string     `bson:"comments,omitempty" json:"comments,omitempty"`
}

// Instance tracks one unit of work through its chain
type Instance struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkflowType  string             `bson:"workflow_type" json:"workflow_type"`
	SubmissionRef string             `bson:"submission_ref" json:"submission_ref"`
	Decisions     []StepDecision     `bson:"decisions" json:"decisions"`
	Status        AggregateStatus    `bson:"status" json:"status"`
	Version       int64              `bson:"version" json:"version"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	CompletedAt   *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

func (i *Instance) IsApproved() bool { return i.Status.Kind == StatusApproved }
func (i *Instance) IsRejected() bool { return i.Status.Kind == StatusRejected }
func (i *Instance) IsPending() bool  { return i.Status.Kind == StatusPendingStep }

// IsFinalStep reports whether stepIndex is the last step of the chain
func (i *Instance) IsFinalStep(stepIndex int) bool {
	return len(i.Decisions) > 0 && stepIndex == len(i.Decisions)-1
}

// Clone returns a deep copy so callers can never share decision slices
func (i *Instance) Clone() *Instance {
	if i == nil {
		return nil
	}
	out := *i
	out.Decisions = make([]StepDecision, len(i.Decisions))
	for k, d := range i.Decisions {
		if d.DecidedAt != nil {
			at := *d.DecidedAt
			d.DecidedAt = &at
		}
		out.Decisions[k] = d
	}
	if i.CompletedAt != nil {
		at := *i.CompletedAt
		out.CompletedAt = &at
	}
	return &out
}

// Identity is the already-resolved acting authority
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// deriveStatus computes the aggregate status from the decisions alone
func deriveStatus(decisions []StepDecision) AggregateStatus {
	if len(decisions) == 0 {
		// A chain with no authorities has nothing to wait for
		return Approved()
	}
	for _, d := range decisions {
		switch d.Decision {
		case DecisionRejected:
			return RejectedAt(d.StepIndex)
		case DecisionPending:
			return PendingStep(d.StepIndex)
		}
	}
	return Approved()
}
