package validation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IssueType string

const (
	IssueMissingData       IssueType = "missing_data"
	IssueDuplicate         IssueType = "duplicate"
	IssueInconsistentTotal IssueType = "inconsistent_total"
	IssueFormatError       IssueType = "format_error"
)

func (t IssueType) Valid() bool {
	switch t {
	case IssueMissingData, IssueDuplicate, IssueInconsistentTotal, IssueFormatError:
		return true
	}
	return false
}

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func (s Severity) Valid() bool {
	return s == SeverityWarning || s == SeverityError
}

// Issue is one problem found while ingesting a submission. Issues are never
// deleted; resolving one only flips Resolved.
type Issue struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubmissionRef   string             `bson:"submission_ref" json:"submission_ref"`
	AffectedItemRef string             `bson:"affected_item_ref,omitempty" json:"affected_item_ref,omitempty"`
	FieldName       string             `bson:"field_name,omitempty" json:"field_name,omitempty"`
	IssueType       IssueType          `bson:"issue_type" json:"issue_type"`
	Severity        Severity           `bson:"severity" json:"severity"`
	Description     string             `bson:"description" json:"description"`
	Resolved        bool               `bson:"resolved" json:"resolved"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	ResolvedAt      *time.Time         `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}

// Blocking reports whether the issue prevents review from starting
func (i Issue) Blocking() bool {
	return !i.Resolved && i.Severity == SeverityError
}

// Filter narrows ListIssues; nil fields match everything
type Filter struct {
	Severity *Severity
	Resolved *bool
}

func (f Filter) Match(issue Issue) bool {
	if f.Severity != nil && issue.Severity != *f.Severity {
		return false
	}
	if f.Resolved != nil && issue.Resolved != *f.Resolved {
		return false
	}
	return true
}
