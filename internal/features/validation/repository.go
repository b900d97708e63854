package validation

import (
	"context"
	"fmt"
	"time"

	"go-unionreg/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LedgerRepositoryImpl stores issues in the validation_issues collection
type LedgerRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewLedgerRepository(mongodb *database.MongodbDB) *LedgerRepositoryImpl {
	return &LedgerRepositoryImpl{
		Collection: mongodb.DB.Collection("validation_issues"),
	}
}

func (r *LedgerRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "submission_ref", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "_id", Value: 1},
		},
	})
	return err
}

func (r *LedgerRepositoryImpl) AddIssue(ctx context.Context, submissionID string, issue Issue) (string, error) {
	if err := checkIssue(submissionID, issue); err != nil {
		return "", err
	}
	issue.ID = primitive.NewObjectID()
	issue.SubmissionRef = submissionID
	issue.Resolved = false
	issue.ResolvedAt = nil
	issue.CreatedAt = time.Now().UTC()

	if _, err := r.Collection.InsertOne(ctx, issue); err != nil {
		return "", fmt.Errorf("validation: insert issue: %w", err)
	}
	return issue.ID.Hex(), nil
}

func (r *LedgerRepositoryImpl) ListIssues(ctx context.Context, submissionID string, filter Filter) ([]Issue, error) {
	query := bson.M{"submission_ref": submissionID}
	if filter.Severity != nil {
		query["severity"] = *filter.Severity
	}
	if filter.Resolved != nil {
		query["resolved"] = *filter.Resolved
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	issues := []Issue{}
	if err = cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *LedgerRepositoryImpl) MarkResolved(ctx context.Context, issueID string) error {
	oid, err := primitive.ObjectIDFromHex(issueID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrIssueNotFound, issueID)
	}

	update := bson.M{"$set": bson.M{"resolved": true, "resolved_at": time.Now().UTC()}}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": oid, "resolved": false}, update)
	if err != nil {
		return fmt.Errorf("validation: resolve issue: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either already resolved (no-op) or unknown
	n, err := r.Collection.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrIssueNotFound, issueID)
	}
	return nil
}

func (r *LedgerRepositoryImpl) HasBlockingErrors(ctx context.Context, submissionID string) (bool, error) {
	n, err := r.Collection.CountDocuments(ctx, bson.M{
		"submission_ref": submissionID,
		"severity":       SeverityError,
		"resolved":       false,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LedgerRepositoryImpl) BlockingIssues(ctx context.Context, submissionID string) ([]Issue, error) {
	return r.ListIssues(ctx, submissionID, blockingOnly())
}
