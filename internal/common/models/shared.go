package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	ActorIDKey ContextKey = "actor_id"
)

type AuditAction string

const (
	AuditActionSubmission AuditAction = "SUBMISSION"
	AuditActionIngest     AuditAction = "INGEST"
	AuditActionIssue      AuditAction = "ISSUE"
	AuditActionReview     AuditAction = "REVIEW"
	AuditActionApproval   AuditAction = "APPROVAL"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`                       // Feature that produced the entry (review, validation)
	RecordID  string             `bson:"record_id" json:"record_id"`                 // Submission or issue ID
	ActorID   string             `bson:"actor_id" json:"actor_id"`                   // Identity that performed the action
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"` // field -> {old, new}
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is a persisted application log line written by the zap DB core
type Log struct {
	AppId        string    `bson:"app_id" json:"app_id"`
	Message      string    `bson:"message" json:"message"`
	ActorID      string    `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	SubmissionID string    `bson:"submission_id,omitempty" json:"submission_id,omitempty"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
