package review

import (
	"time"

	"go-unionreg/internal/features/approval"
	"go-unionreg/internal/features/chain"
	"go-unionreg/internal/features/quorum"
	"go-unionreg/internal/features/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Kind string

const (
	KindMembershipList Kind = "membership_list"
	KindCandidate      Kind = "candidate"
	KindElectionResult Kind = "election_result"
	KindWorkflowItem   Kind = "workflow_item"
)

// defaultWorkflow maps each kind to the chain used when none is given
var defaultWorkflow = map[Kind]string{
	KindMembershipList: chain.MembershipListReview,
	KindCandidate:      chain.CandidateVetting,
	KindElectionResult: chain.ElectionResult,
	KindWorkflowItem:   chain.WorkflowItem,
}

func (k Kind) Valid() bool {
	_, ok := defaultWorkflow[k]
	return ok
}

// Turnout is the participation recorded for an election result
type Turnout struct {
	Eligible int `bson:"eligible" json:"eligible"`
	Present  int `bson:"present" json:"present"`
}

// Submission is the unit of work moved through an approval chain
type Submission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind         Kind               `bson:"kind" json:"kind"`
	WorkflowType string             `bson:"workflow_type" json:"workflow_type"`
	Title        string             `bson:"title" json:"title"`
	UnionRef     string             `bson:"union_ref,omitempty" json:"union_ref,omitempty"`
	Turnout      *Turnout           `bson:"turnout,omitempty" json:"turnout,omitempty"`
	InstanceID   string             `bson:"instance_id,omitempty" json:"instance_id,omitempty"` // empty until review begins
	SubmittedBy  string             `bson:"submitted_by,omitempty" json:"submitted_by,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// ReviewStatus is the submission-level read model. It is always projected
// from the instance and never stored.
type ReviewStatus string

const (
	StatusDraft       ReviewStatus = "draft"
	StatusUnderReview ReviewStatus = "under_review"
	StatusApproved    ReviewStatus = "approved"
	StatusRejected    ReviewStatus = "rejected"
)

// ProjectStatus maps an instance's aggregate status onto the submission
// status. A nil instance means review has not begun.
func ProjectStatus(inst *approval.Instance) ReviewStatus {
	if inst == nil {
		return StatusDraft
	}
	switch inst.Status.Kind {
	case approval.StatusApproved:
		return StatusApproved
	case approval.StatusRejected:
		return StatusRejected
	default:
		return StatusUnderReview
	}
}

// ReviewState is the read-only composite shown on the review screen
type ReviewState struct {
	Submission  *Submission          `json:"submission"`
	Instance    *approval.Instance   `json:"instance,omitempty"`
	Issues      []validation.Issue   `json:"issues"`
	CurrentStep *chain.AuthorityStep `json:"current_step,omitempty"`
	Status      ReviewStatus         `json:"status"`
	Quorum      *quorum.Result       `json:"quorum,omitempty"`
}
