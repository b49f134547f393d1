package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/config"
)

// MongoRepository implements all repository interfaces over one database.
type MongoRepository struct {
	Documents     *mongo.Collection
	GraphVersions *mongo.Collection
	KGBranches    *mongo.Collection
	KGCommits     *mongo.Collection
	KGStashes     *mongo.Collection
	ETLJobs       *mongo.Collection
	Client        *mongo.Client
}

func NewMongoRepository(db *mongo.Database, cfg *config.Config) *MongoRepository {
	return &MongoRepository{
		Documents:     db.Collection(cfg.DocumentsCollection),
		GraphVersions: db.Collection(cfg.GraphVersionsCollection),
		KGBranches:    db.Collection(cfg.KGBranchesCollection),
		KGCommits:     db.Collection(cfg.KGCommitsCollection),
		KGStashes:     db.Collection(cfg.KGStashesCollection),
		ETLJobs:       db.Collection(cfg.ETLJobsCollection),
		Client:        db.Client(),
	}
}

// EnsureIndexes creates all collection indexes. A failure on one collection
// does not stop the others from being created; all errors are reported.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	return errors.Join(
		r.EnsureDocumentIndexes(ctx),
		r.EnsureGraphIndexes(ctx),
		r.EnsureKGIndexes(ctx),
		r.EnsureETLIndexes(ctx),
	)
}
