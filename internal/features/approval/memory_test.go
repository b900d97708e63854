package approval

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreOptimisticUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	inst := &Instance{
		WorkflowType: "chain-1",
		Decisions:    []StepDecision{{StepIndex: 0, Decision: DecisionPending}},
		Status:       PendingStep(0),
		CreatedAt:    time.Now(),
	}
	if err := store.Create(ctx, inst); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if inst.ID.IsZero() || inst.Version != 1 {
		t.Fatalf("Create() did not assign id/version: %+v", inst)
	}

	first, _ := store.Get(ctx, inst.ID.Hex())
	second, _ := store.Get(ctx, inst.ID.Hex())

	first.Decisions[0].Decision = DecisionApproved
	first.Status = Approved()
	if err := store.Update(ctx, first); err != nil {
		t.Fatalf("Update(first) error = %v", err)
	}
	if first.Version != 2 {
		t.Errorf("Version after update = %d, want 2", first.Version)
	}

	second.Decisions[0].Decision = DecisionRejected
	second.Status = RejectedAt(0)
	if err := store.Update(ctx, second); !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("Update(stale) error = %v, want ErrConcurrentModification", err)
	}

	stored, _ := store.Get(ctx, inst.ID.Hex())
	if !stored.IsApproved() {
		t.Errorf("stored status = %s, want approved", stored.Status)
	}
	pending, _ := store.ListPending(ctx)
	if len(pending) != 0 {
		t.Errorf("ListPending() = %d instances, want 0", len(pending))
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore()
	for _, id := range []string{"not-hex", "65f0c0ffee0000000000beef"} {
		if _, err := store.Get(context.Background(), id); !errors.Is(err, ErrInstanceNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrInstanceNotFound", id, err)
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	inst := &Instance{WorkflowType: "chain-1", Status: PendingStep(0)}
	if err := store.Create(ctx, inst); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Delete(ctx, inst.ID.Hex()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, inst.ID.Hex()); !errors.Is(err, ErrInstanceNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrInstanceNotFound", err)
	}
	if err := store.Delete(ctx, inst.ID.Hex()); !errors.Is(err, ErrInstanceNotFound) {
		t.Errorf("second Delete() error = %v, want ErrInstanceNotFound", err)
	}
}

func TestLockerSerializesSameKey(t *testing.T) {
	locker := NewLocker()
	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("instance-1")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxSeen)
	}
	if locker.size() != 0 {
		t.Errorf("locker kept %d entries after release", locker.size())
	}
}

func TestLockerIndependentKeys(t *testing.T) {
	locker := NewLocker()
	unlockA := locker.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := locker.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on key b blocked behind key a")
	}
	unlockA()
}
