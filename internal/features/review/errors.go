package review

import (
	"errors"
	"fmt"

	"go-unionreg/internal/features/validation"
)

var (
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrInvalidSubmission       = errors.New("invalid submission")
	ErrReviewAlreadyStarted    = errors.New("review has already started")
	ErrReviewNotStarted        = errors.New("review has not started")
	ErrSubmissionNotReviewable = errors.New("submission has unresolved validation errors")
	ErrQuorumNotMet            = errors.New("quorum not met")
)

// NotReviewableError carries the issues that must be resolved before review
type NotReviewableError struct {
	SubmissionID string
	Issues       []validation.Issue
}

func (e *NotReviewableError) Error() string {
	return fmt.Sprintf("%s: %s has %d blocking issue(s)", ErrSubmissionNotReviewable, e.SubmissionID, len(e.Issues))
}

func (e *NotReviewableError) Is(target error) bool {
	return target == ErrSubmissionNotReviewable
}
