package validation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryLedger keeps issues in insertion order behind a single lock
type MemoryLedger struct {
	mu     sync.RWMutex
	issues []*Issue
	byID   map[primitive.ObjectID]*Issue
	now    func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		byID: make(map[primitive.ObjectID]*Issue),
		now:  time.Now,
	}
}

func (l *MemoryLedger) AddIssue(_ context.Context, submissionID string, issue Issue) (string, error) {
	if err := checkIssue(submissionID, issue); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	issue.ID = primitive.NewObjectID()
	issue.SubmissionRef = submissionID
	issue.Resolved = false
	issue.ResolvedAt = nil
	issue.CreatedAt = l.now().UTC()

	stored := issue
	l.issues = append(l.issues, &stored)
	l.byID[stored.ID] = &stored
	return stored.ID.Hex(), nil
}

func (l *MemoryLedger) ListIssues(_ context.Context, submissionID string, filter Filter) ([]Issue, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []Issue{}
	for _, issue := range l.issues {
		if issue.SubmissionRef == submissionID && filter.Match(*issue) {
			out = append(out, *issue)
		}
	}
	return out, nil
}

func (l *MemoryLedger) MarkResolved(_ context.Context, issueID string) error {
	oid, err := primitive.ObjectIDFromHex(issueID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrIssueNotFound, issueID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	issue, ok := l.byID[oid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrIssueNotFound, issueID)
	}
	if issue.Resolved {
		return nil
	}
	now := l.now().UTC()
	issue.Resolved = true
	issue.ResolvedAt = &now
	return nil
}

func (l *MemoryLedger) HasBlockingErrors(ctx context.Context, submissionID string) (bool, error) {
	issues, err := l.BlockingIssues(ctx, submissionID)
	if err != nil {
		return false, err
	}
	return len(issues) > 0, nil
}

func (l *MemoryLedger) BlockingIssues(ctx context.Context, submissionID string) ([]Issue, error) {
	return l.ListIssues(ctx, submissionID, blockingOnly())
}
