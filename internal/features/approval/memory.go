package approval

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an InstanceStore kept in process memory
type MemoryStore struct {
	mu        sync.RWMutex
	instances map[primitive.ObjectID]*Instance
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{instances: make(map[primitive.ObjectID]*Instance)}
}

func (s *MemoryStore) Create(_ context.Context, inst *Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inst.ID.IsZero() {
		inst.ID = primitive.NewObjectID()
	}
	inst.Version = 1
	s.instances[inst.ID] = inst.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Instance, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.instances[oid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}
	return inst.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, inst *Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.instances[inst.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInstanceNotFound, inst.ID.Hex())
	}
	if current.Version != inst.Version {
		return fmt.Errorf("%w: %s at version %d", ErrConcurrentModification, inst.ID.Hex(), inst.Version)
	}
	inst.Version++
	s.instances[inst.ID] = inst.Clone()
	return nil
}

func (s *MemoryStore) ListPending(_ context.Context) ([]Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		if inst.IsPending() {
			out = append(out, *inst.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.instances[oid]; !ok {
		return fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}
	delete(s.instances, oid)
	return nil
}
