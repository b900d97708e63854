package chain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownWorkflowType = errors.New("unknown workflow type")
	ErrInvalidChain        = errors.New("invalid approval chain")
)

// Registry holds one Definition per workflow type. It is filled once at
// start-up and only read afterwards, so it carries no lock.
type Registry struct {
	chains map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{chains: make(map[string]Definition)}
}

// NewDefaultRegistry returns a registry holding the built-in chains
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range Defaults() {
		// Built-ins are valid by construction
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

// Register validates and stores a chain, replacing any chain of the same type
func (r *Registry) Register(def Definition) error {
	if err := Validate(def); err != nil {
		return err
	}
	stored := def
	stored.Steps = append([]AuthorityStep(nil), def.Steps...)
	r.chains[def.WorkflowType] = stored
	return nil
}

// GetChain returns the chain registered for workflowType
func (r *Registry) GetChain(workflowType string) (Definition, error) {
	def, ok := r.chains[workflowType]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownWorkflowType, workflowType)
	}
	def.Steps = append([]AuthorityStep(nil), def.Steps...)
	return def, nil
}

// List returns every registered chain ordered by workflow type
func (r *Registry) List() []Definition {
	out := make([]Definition, 0, len(r.chains))
	for _, def := range r.chains {
		def.Steps = append([]AuthorityStep(nil), def.Steps...)
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WorkflowType < out[j].WorkflowType
	})
	return out
}

// Validate checks the chain invariants: contiguous indexes from 0 and unique roles
func Validate(def Definition) error {
	if strings.TrimSpace(def.WorkflowType) == "" {
		return fmt.Errorf("%w: workflow type is required", ErrInvalidChain)
	}
	if def.QuorumPercentage < 0 || def.QuorumPercentage > 100 {
		return fmt.Errorf("%w: %s: quorum percentage %v outside [0,100]", ErrInvalidChain, def.WorkflowType, def.QuorumPercentage)
	}
	seen := make(map[string]bool, len(def.Steps))
	for i, step := range def.Steps {
		if step.StepIndex != i {
			return fmt.Errorf("%w: %s: step %d has index %d", ErrInvalidChain, def.WorkflowType, i, step.StepIndex)
		}
		role := strings.TrimSpace(step.AuthorityRole)
		if role == "" {
			return fmt.Errorf("%w: %s: step %d has no authority role", ErrInvalidChain, def.WorkflowType, i)
		}
		if seen[role] {
			return fmt.Errorf("%w: %s: duplicate authority role %q", ErrInvalidChain, def.WorkflowType, role)
		}
		seen[role] = true
	}
	return nil
}
