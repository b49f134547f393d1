package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
)

func (r *MongoRepository) EnsureETLIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "submitted_at", Value: -1}},
		Options: options.Index().SetName("jobs_by_status"),
	}
	_, err := r.ETLJobs.Indexes().CreateMany(ctx, []mongo.IndexModel{idx})
	return err
}

func (r *MongoRepository) InsertETLJob(ctx context.Context, job *model.ETLJob) error {
	_, err := r.ETLJobs.InsertOne(ctx, job)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) GetETLJob(ctx context.Context, runID string) (*model.ETLJob, error) {
	var job model.ETLJob
	err := r.ETLJobs.FindOne(ctx, bson.M{"_id": runID}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *MongoRepository) SetETLJobResult(ctx context.Context, job *model.ETLJob) error {
	res, err := r.ETLJobs.UpdateOne(ctx,
		bson.M{"_id": job.RunID},
		bson.M{"$set": bson.M{
			"result":       job.Result,
			"status":       job.Status,
			"completed_at": job.CompletedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SetETLJobManifest(ctx context.Context, job *model.ETLJob) error {
	res, err := r.ETLJobs.UpdateOne(ctx,
		bson.M{"_id": job.RunID},
		bson.M{"$set": bson.M{"manifest": job.Manifest}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
