package review

import (
	"context"
	"fmt"
	"time"

	"go-unionreg/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubmissionRepository persists submissions. LinkInstance only succeeds once
// per submission.
type SubmissionRepository interface {
	Create(ctx context.Context, s *Submission) error
	Get(ctx context.Context, id string) (*Submission, error)
	LinkInstance(ctx context.Context, id string, instanceID string) error
}

type SubmissionRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewSubmissionRepository(mongodb *database.MongodbDB) *SubmissionRepositoryImpl {
	return &SubmissionRepositoryImpl{
		Collection: mongodb.DB.Collection("submissions"),
	}
}

func (r *SubmissionRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "kind", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *SubmissionRepositoryImpl) Create(ctx context.Context, s *Submission) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if _, err := r.Collection.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("review: insert submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepositoryImpl) Get(ctx context.Context, id string) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionNotFound, id)
	}
	var s Submission
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: %s", ErrSubmissionNotFound, id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepositoryImpl) LinkInstance(ctx context.Context, id string, instanceID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSubmissionNotFound, id)
	}
	filter := bson.M{
		"_id": oid,
		"$or": bson.A{
			bson.M{"instance_id": bson.M{"$exists": false}},
			bson.M{"instance_id": ""},
		},
	}
	update := bson.M{"$set": bson.M{"instance_id": instanceID, "updated_at": time.Now().UTC()}}
	res, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("review: link instance: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", ErrReviewAlreadyStarted, id)
	}
	return nil
}
