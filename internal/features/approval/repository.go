package approval

import (
	"context"
	"fmt"

	"go-unionreg/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InstanceStore persists workflow instances. Update is a compare-and-swap on
// Version so two writers can never both commit against the same snapshot.
type InstanceStore interface {
	Create(ctx context.Context, inst *Instance) error
	Get(ctx context.Context, id string) (*Instance, error)
	Update(ctx context.Context, inst *Instance) error
	ListPending(ctx context.Context) ([]Instance, error)
	// Delete removes an instance that was never linked to its submission
	Delete(ctx context.Context, id string) error
}

type InstanceRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewInstanceRepository(mongodb *database.MongodbDB) *InstanceRepositoryImpl {
	return &InstanceRepositoryImpl{
		Collection: mongodb.DB.Collection("approval_instances"),
	}
}

func (r *InstanceRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "submission_ref", Value: 1}}},
		{Keys: bson.D{{Key: "status.kind", Value: 1}, {Key: "workflow_type", Value: 1}}},
	})
	return err
}

func (r *InstanceRepositoryImpl) Create(ctx context.Context, inst *Instance) error {
	if inst.ID.IsZero() {
		inst.ID = primitive.NewObjectID()
	}
	inst.Version = 1
	_, err := r.Collection.InsertOne(ctx, inst)
	if err != nil {
		return fmt.Errorf("approval: insert instance: %w", err)
	}
	return nil
}

func (r *InstanceRepositoryImpl) Get(ctx context.Context, id string) (*Instance, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}
	var inst Instance
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&inst)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
		}
		return nil, err
	}
	return &inst, nil
}

func (r *InstanceRepositoryImpl) Update(ctx context.Context, inst *Instance) error {
	update := bson.M{
		"$set": bson.M{
			"decisions":    inst.Decisions,
			"status":       inst.Status,
			"completed_at": inst.CompletedAt,
			"version":      inst.Version + 1,
		},
	}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": inst.ID, "version": inst.Version}, update)
	if err != nil {
		return fmt.Errorf("approval: update instance: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.Collection.CountDocuments(ctx, bson.M{"_id": inst.ID})
		if err == nil && n == 0 {
			return fmt.Errorf("%w: %s", ErrInstanceNotFound, inst.ID.Hex())
		}
		return fmt.Errorf("%w: %s at version %d", ErrConcurrentModification, inst.ID.Hex(), inst.Version)
	}
	inst.Version++
	return nil
}

func (r *InstanceRepositoryImpl) ListPending(ctx context.Context) ([]Instance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"status.kind": StatusPendingStep}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var instances []Instance
	if err = cursor.All(ctx, &instances); err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *InstanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("approval: delete instance: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}
	return nil
}
