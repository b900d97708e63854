package chain

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	registry := NewDefaultRegistry()

	def, err := registry.GetChain(CandidateVetting)
	if err != nil {
		t.Fatalf("GetChain() error = %v", err)
	}
	wantRoles := []string{"registrar", "deputy_registrar", "oir_officer", "electoral_commission"}
	if def.Len() != len(wantRoles) {
		t.Fatalf("Len() = %d, want %d", def.Len(), len(wantRoles))
	}
	for i, role := range wantRoles {
		if def.Steps[i].StepIndex != i || def.Steps[i].AuthorityRole != role {
			t.Errorf("step %d = %+v, want role %s", i, def.Steps[i], role)
		}
	}

	election, _ := registry.GetChain(ElectionResult)
	if !election.RequiresQuorum() {
		t.Errorf("election-result chain should require quorum")
	}

	if _, err := registry.GetChain("pay-rise"); !errors.Is(err, ErrUnknownWorkflowType) {
		t.Errorf("GetChain(unknown) error = %v, want ErrUnknownWorkflowType", err)
	}
}

func TestGetChainReturnsCopy(t *testing.T) {
	registry := NewDefaultRegistry()
	def, _ := registry.GetChain(WorkflowItem)
	def.Steps[0].AuthorityRole = "tampered"

	again, _ := registry.GetChain(WorkflowItem)
	if again.Steps[0].AuthorityRole != "initial_review" {
		t.Errorf("registry chain was mutated through a returned copy")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr bool
	}{
		{name: "empty chain is valid", def: Definition{WorkflowType: "noop"}},
		{name: "missing type", def: Definition{}, wantErr: true},
		{
			name: "gap in indexes",
			def: Definition{WorkflowType: "x", Steps: []AuthorityStep{
				{StepIndex: 0, AuthorityRole: "a"}, {StepIndex: 2, AuthorityRole: "b"},
			}},
			wantErr: true,
		},
		{
			name: "duplicate role",
			def: Definition{WorkflowType: "x", Steps: []AuthorityStep{
				{StepIndex: 0, AuthorityRole: "a"}, {StepIndex: 1, AuthorityRole: "a"},
			}},
			wantErr: true,
		},
		{
			name:    "blank role",
			def:     Definition{WorkflowType: "x", Steps: []AuthorityStep{{StepIndex: 0, AuthorityRole: " "}}},
			wantErr: true,
		},
		{name: "quorum out of range", def: Definition{WorkflowType: "x", QuorumPercentage: 120}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.def)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidChain) {
				t.Errorf("Validate() error = %v, want ErrInvalidChain", err)
			}
		})
	}
}

func TestLoadOverridesBuiltIns(t *testing.T) {
	doc := `
chains:
  - workflow_type: membership-list-review
    steps:
      - role: registrar
        label: Registrar
      - role: electoral_commission
        label: Electoral Commission
  - workflow_type: rule-change
    quorum_percentage: 60
    steps:
      - role: secretary
        label: Branch Secretary
`
	defs, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	registry := NewDefaultRegistry()
	for _, def := range defs {
		if err := registry.Register(def); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	membership, _ := registry.GetChain(MembershipListReview)
	if membership.Len() != 2 || membership.Steps[1].StepIndex != 1 || membership.Steps[1].AuthorityRole != "electoral_commission" {
		t.Errorf("membership chain not overridden: %+v", membership.Steps)
	}
	rule, err := registry.GetChain("rule-change")
	if err != nil {
		t.Fatalf("GetChain(rule-change) error = %v", err)
	}
	if rule.QuorumPercentage != 60 {
		t.Errorf("QuorumPercentage = %v, want 60", rule.QuorumPercentage)
	}
	if len(registry.List()) != 5 {
		t.Errorf("List() returned %d chains, want 5", len(registry.List()))
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	doc := "chains:\n  - workflow_type: x\n    approvers: [a]\n"
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Errorf("expected unknown field to be rejected")
	}
}

func TestLoadEmptyDocument(t *testing.T) {
	defs, err := Load(strings.NewReader(""))
	if err != nil || len(defs) != 0 {
		t.Errorf("Load(empty) = %v, %v; want no chains and no error", defs, err)
	}
}
