package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	NotifyStatusChange(ctx context.Context, change StatusChange) error
	ListFor(ctx context.Context, userID, role string, page, limit int64) ([]Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID, role string) error
}

type NotificationServiceImpl struct {
	repo NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo NotificationRepository) NotificationService {
	return &NotificationServiceImpl{repo: repo, now: time.Now}
}

// NotifyStatusChange tells the next authority it has work, and tells the
// submitter when the chain finishes.
func (s *NotificationServiceImpl) NotifyStatusChange(ctx context.Context, change StatusChange) error {
	var out []*Notification

	if change.NextRole != "" {
		out = append(out, &Notification{
			Recipient:     RoleRecipient(change.NextRole),
			SubmissionRef: change.SubmissionRef,
			Title:         fmt.Sprintf("Review required: %s", change.Title),
			Message:       fmt.Sprintf("%s is awaiting %s", change.Title, change.NextLabel),
			Type:          NotificationTypeTask,
		})
	}

	if change.SubmittedBy != "" && change.OldStatus != change.NewStatus {
		typ := NotificationTypeInfo
		switch change.NewStatus {
		case "approved":
			typ = NotificationTypeSuccess
		case "rejected":
			typ = NotificationTypeWarning
		}
		out = append(out, &Notification{
			Recipient:     UserRecipient(change.SubmittedBy),
			SubmissionRef: change.SubmissionRef,
			Title:         fmt.Sprintf("%s is %s", change.Title, change.NewStatus),
			Message:       fmt.Sprintf("Status changed from %s to %s", change.OldStatus, change.NewStatus),
			Type:          typ,
		})
	}

	var errs []error
	for _, n := range out {
		n.CreatedAt = s.now().UTC()
		if err := s.repo.Create(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *NotificationServiceImpl) ListFor(ctx context.Context, userID, role string, page, limit int64) ([]Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.repo.ListForRecipients(ctx, recipientsFor(userID, role), limit, (page-1)*limit)
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, id, userID, role string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotificationNotFound
	}
	return s.repo.MarkAsRead(ctx, oid, recipientsFor(userID, role))
}

func recipientsFor(userID, role string) []string {
	recipients := []string{UserRecipient(userID)}
	if role != "" {
		recipients = append(recipients, RoleRecipient(role))
	}
	return recipients
}
