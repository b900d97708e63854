package notification

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRepo struct {
	created    []*Notification
	recipients []string
	failCreate error
}

func (f *fakeRepo) Create(_ context.Context, n *Notification) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeRepo) ListForRecipients(_ context.Context, recipients []string, _, _ int64) ([]Notification, int64, error) {
	f.recipients = recipients
	return nil, 0, nil
}

func (f *fakeRepo) MarkAsRead(_ context.Context, _ primitive.ObjectID, recipients []string) error {
	f.recipients = recipients
	return nil
}

func newTestService(repo *fakeRepo) *NotificationServiceImpl {
	return &NotificationServiceImpl{repo: repo, now: func() time.Time { return time.Unix(0, 0) }}
}

func TestNotifyStatusChange(t *testing.T) {
	tests := []struct {
		name           string
		change         StatusChange
		wantRecipients []string
		wantTypes      []NotificationType
	}{
		{
			name: "advances to next authority",
			change: StatusChange{
				SubmissionRef: "s1", Title: "List 2024", OldStatus: "under_review", NewStatus: "under_review",
				NextRole: "deputy_registrar", NextLabel: "Deputy Registrar", SubmittedBy: "u1",
			},
			wantRecipients: []string{"role:deputy_registrar"},
			wantTypes:      []NotificationType{NotificationTypeTask},
		},
		{
			name: "approved tells the submitter",
			change: StatusChange{
				SubmissionRef: "s1", Title: "List 2024", OldStatus: "under_review", NewStatus: "approved", SubmittedBy: "u1",
			},
			wantRecipients: []string{"user:u1"},
			wantTypes:      []NotificationType{NotificationTypeSuccess},
		},
		{
			name: "review start notifies both",
			change: StatusChange{
				SubmissionRef: "s1", Title: "List 2024", OldStatus: "draft", NewStatus: "under_review",
				NextRole: "registrar", NextLabel: "Registrar", SubmittedBy: "u1",
			},
			wantRecipients: []string{"role:registrar", "user:u1"},
			wantTypes:      []NotificationType{NotificationTypeTask, NotificationTypeInfo},
		},
		{
			name:   "rejected without submitter is silent",
			change: StatusChange{SubmissionRef: "s1", OldStatus: "under_review", NewStatus: "rejected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			if err := newTestService(repo).NotifyStatusChange(context.Background(), tt.change); err != nil {
				t.Fatalf("NotifyStatusChange() error = %v", err)
			}
			if len(repo.created) != len(tt.wantRecipients) {
				t.Fatalf("created %d notifications, want %d", len(repo.created), len(tt.wantRecipients))
			}
			for i, n := range repo.created {
				if n.Recipient != tt.wantRecipients[i] || n.Type != tt.wantTypes[i] {
					t.Errorf("notification %d = %s/%s, want %s/%s", i, n.Recipient, n.Type, tt.wantRecipients[i], tt.wantTypes[i])
				}
			}
		})
	}
}

func TestNotifyStatusChangeReportsStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeRepo{failCreate: boom}
	err := newTestService(repo).NotifyStatusChange(context.Background(), StatusChange{NextRole: "registrar"})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
}

func TestListForIncludesRole(t *testing.T) {
	repo := &fakeRepo{}
	if _, _, err := newTestService(repo).ListFor(context.Background(), "u1", "registrar", 1, 10); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(repo.recipients, []string{"user:u1", "role:registrar"}) {
		t.Errorf("recipients = %v", repo.recipients)
	}
}

func TestMarkAsReadRejectsMalformedID(t *testing.T) {
	err := newTestService(&fakeRepo{}).MarkAsRead(context.Background(), "nope", "u1", "")
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("error = %v, want ErrNotificationNotFound", err)
	}
}
