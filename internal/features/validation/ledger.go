package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIssueNotFound = errors.New("validation issue not found")
	ErrInvalidIssue  = errors.New("invalid validation issue")
)

// Ledger records validation issues per submission
type Ledger interface {
	AddIssue(ctx context.Context, submissionID string, issue Issue) (string, error)
	ListIssues(ctx context.Context, submissionID string, filter Filter) ([]Issue, error)
	// MarkResolved is idempotent: resolving a resolved issue succeeds.
	MarkResolved(ctx context.Context, issueID string) error
	HasBlockingErrors(ctx context.Context, submissionID string) (bool, error)
	BlockingIssues(ctx context.Context, submissionID string) ([]Issue, error)
}

func checkIssue(submissionID string, issue Issue) error {
	if strings.TrimSpace(submissionID) == "" {
		return fmt.Errorf("%w: submission id is required", ErrInvalidIssue)
	}
	if !issue.IssueType.Valid() {
		return fmt.Errorf("%w: unknown issue type %q", ErrInvalidIssue, issue.IssueType)
	}
	if !issue.Severity.Valid() {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidIssue, issue.Severity)
	}
	if strings.TrimSpace(issue.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidIssue)
	}
	return nil
}

func blockingOnly() Filter {
	severity := SeverityError
	resolved := false
	return Filter{Severity: &severity, Resolved: &resolved}
}
