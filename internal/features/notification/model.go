package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeTask    NotificationType = "task"
)

// Recipient prefixes. A role recipient fans out to everyone holding that role.
const (
	RolePrefix = "role:"
	UserPrefix = "user:"
)

func RoleRecipient(role string) string { return RolePrefix + role }
func UserRecipient(id string) string   { return UserPrefix + id }

type Notification struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Recipient     string             `bson:"recipient" json:"recipient"`
	SubmissionRef string             `bson:"submission_ref" json:"submission_ref"`
	Title         string             `bson:"title" json:"title"`
	Message       string             `bson:"message" json:"message"`
	Type          NotificationType   `bson:"type" json:"type"`
	IsRead        bool               `bson:"is_read" json:"is_read"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	ReadAt        *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
}

// StatusChange describes a review transition worth telling people about.
// NextRole is empty once the chain has finished.
type StatusChange struct {
	SubmissionRef string
	Title         string
	WorkflowType  string
	OldStatus     string
	NewStatus     string
	NextRole      string
	NextLabel     string
	ActorID       string
	SubmittedBy   string
}
