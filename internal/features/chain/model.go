package chain

// Built-in workflow types
const (
	CandidateVetting     = "candidate-vetting"
	MembershipListReview = "membership-list-review"
	WorkflowItem         = "workflow-item"
	ElectionResult       = "election-result"
)

// AuthorityStep is one named position in an approval chain
type AuthorityStep struct {
	StepIndex     int    `bson:"step_index" json:"step_index" yaml:"-"`
	AuthorityRole string `bson:"authority_role" json:"authority_role" yaml:"role"`
	DisplayLabel  string `bson:"display_label" json:"display_label" yaml:"label"`
}

// Definition is the ordered chain of authorities for one workflow type.
// Definitions are shared read-only by every instance of that type.
type Definition struct {
	WorkflowType string          `json:"workflow_type" yaml:"workflow_type"`
	Steps        []AuthorityStep `json:"steps" yaml:"steps"`
	// QuorumPercentage gates the final approval on participation; 0 disables the gate.
	QuorumPercentage float64 `json:"quorum_percentage,omitempty" yaml:"quorum_percentage"`
}

// Len returns the number of steps in the chain
func (d Definition) Len() int {
	return len(d.Steps)
}

// Step returns the step at index i
func (d Definition) Step(i int) (AuthorityStep, bool) {
	if i < 0 || i >= len(d.Steps) {
		return AuthorityStep{}, false
	}
	return d.Steps[i], true
}

// RequiresQuorum reports whether the last approval is gated by turnout
func (d Definition) RequiresQuorum() bool {
	return d.QuorumPercentage > 0
}

func steps(pairs ...[2]string) []AuthorityStep {
	out := make([]AuthorityStep, len(pairs))
	for i, p := range pairs {
		out[i] = AuthorityStep{StepIndex: i, AuthorityRole: p[0], DisplayLabel: p[1]}
	}
	return out
}

// Defaults returns the chains used when no chain file overrides them
func Defaults() []Definition {
	return []Definition{
		{
			WorkflowType: CandidateVetting,
			Steps: steps(
				[2]string{"registrar", "Registrar"},
				[2]string{"deputy_registrar", "Deputy Registrar"},
				[2]string{"oir_officer", "OIR Officer"},
				[2]string{"electoral_commission", "Electoral Commission"},
			),
		},
		{
			WorkflowType: MembershipListReview,
			Steps: steps(
				[2]string{"registrar", "Registrar"},
				[2]string{"deputy_registrar", "Deputy Registrar"},
				[2]string{"oir_officer", "OIR Officer"},
			),
		},
		{
			WorkflowType: WorkflowItem,
			Steps: steps(
				[2]string{"initial_review", "Initial Review"},
				[2]string{"registrar_review", "Registrar Review"},
				[2]string{"final_approval", "Final Approval"},
			),
		},
		{
			WorkflowType: ElectionResult,
			Steps: steps(
				[2]string{"returning_officer", "Returning Officer"},
				[2]string{"electoral_commission", "Electoral Commission"},
			),
			QuorumPercentage: 50,
		},
	}
}
