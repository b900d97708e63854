package review

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemorySubmissionRepository keeps submissions in process memory
type MemorySubmissionRepository struct {
	mu          sync.RWMutex
	submissions map[string]Submission
}

func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{submissions: make(map[string]Submission)}
}

func (r *MemorySubmissionRepository) Create(_ context.Context, s *Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	r.submissions[s.ID.Hex()] = copySubmission(*s)
	return nil
}

func (r *MemorySubmissionRepository) Get(_ context.Context, id string) (*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.submissions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionNotFound, id)
	}
	out := copySubmission(s)
	return &out, nil
}

func (r *MemorySubmissionRepository) LinkInstance(_ context.Context, id string, instanceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSubmissionNotFound, id)
	}
	if s.InstanceID != "" {
		return fmt.Errorf("%w: %s", ErrReviewAlreadyStarted, id)
	}
	s.InstanceID = instanceID
	s.UpdatedAt = time.Now().UTC()
	r.submissions[id] = s
	return nil
}

func copySubmission(s Submission) Submission {
	if s.Turnout != nil {
		t := *s.Turnout
		s.Turnout = &t
	}
	return s
}
