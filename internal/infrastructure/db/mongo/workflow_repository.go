package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

const collectionWorkflowRuns = "workflow_runs"

// WorkflowRepository persists the saga audit trail. Every business record
// lives in the remote CMS; this collection only records what the orchestrator
// did, so partial failures can be followed up manually.
type WorkflowRepository struct {
	col *mongo.Collection
}

func NewWorkflowRepository(db *mongo.Database) *WorkflowRepository {
	return &WorkflowRepository{col: db.Collection(collectionWorkflowRuns)}
}

func (r *WorkflowRepository) Insert(ctx context.Context, run *domain.WorkflowRun) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, run)
	return err
}

func (r *WorkflowRepository) Update(ctx context.Context, run *domain.WorkflowRun) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": run.ID}, run)
	return err
}

// FindByID fetches one run for support tooling.
func (r *WorkflowRepository) FindByID(ctx context.Context, id string) (*domain.WorkflowRun, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var run domain.WorkflowRun
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&run); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

// EnsureIndexes creates the indexes used by support queries.
func (r *WorkflowRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "owner_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
