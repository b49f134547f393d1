package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/kg"
)

// commitDoc flattens the snapshot map to a triple array for storage;
// statement keys contain URIs that MongoDB rejects as field names.
type commitDoc struct {
	ID        string      `bson:"_id"`
	Branch    string      `bson:"branch"`
	Parents   []string    `bson:"parents"`
	Triples   []kg.Triple `bson:"triples"`
	Message   string      `bson:"message"`
	CreatedAt time.Time   `bson:"created_at"`
}

type stashDoc struct {
	ID        string      `bson:"_id"`
	Branch    string      `bson:"branch"`
	Triples   []kg.Triple `bson:"triples"`
	Message   string      `bson:"message"`
	CreatedAt time.Time   `bson:"created_at"`
}

func (r *MongoRepository) EnsureKGIndexes(ctx context.Context) error {
	idxCommitBranch := mongo.IndexModel{
		Keys:    bson.D{{Key: "branch", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("commits_by_branch"),
	}
	if _, err := r.KGCommits.Indexes().CreateMany(ctx, []mongo.IndexModel{idxCommitBranch}); err != nil {
		return err
	}

	idxStashBranch := mongo.IndexModel{
		Keys:    bson.D{{Key: "branch", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("stashes_by_branch"),
	}
	_, err := r.KGStashes.Indexes().CreateMany(ctx, []mongo.IndexModel{idxStashBranch})
	return err
}

func (r *MongoRepository) CreateBranch(ctx context.Context, b *kg.Branch) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.KGBranches.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) GetBranch(ctx context.Context, name string) (*kg.Branch, error) {
	var b kg.Branch
	err := r.KGBranches.FindOne(ctx, bson.M{"_id": name}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoRepository) ListBranches(ctx context.Context) ([]*kg.Branch, error) {
	cursor, err := r.KGBranches.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var branches []*kg.Branch
	if err := cursor.All(ctx, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *MongoRepository) SetBranchHead(ctx context.Context, name, head string) error {
	res, err := r.KGBranches.UpdateOne(ctx, bson.M{"_id": name}, bson.M{"$set": bson.M{"head": head}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) InsertCommit(ctx context.Context, c *kg.Commit) error {
	doc := commitDoc{
		ID:        c.ID,
		Branch:    c.Branch,
		Parents:   c.Parents,
		Triples:   c.Snapshot.Triples(),
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
	_, err := r.KGCommits.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) GetCommit(ctx context.Context, id string) (*kg.Commit, error) {
	var doc commitDoc
	err := r.KGCommits.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &kg.Commit{
		ID:        doc.ID,
		Branch:    doc.Branch,
		Parents:   doc.Parents,
		Snapshot:  kg.SnapshotOf(doc.Triples),
		Message:   doc.Message,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (r *MongoRepository) PushStash(ctx context.Context, s *kg.Stash) error {
	doc := stashDoc{
		ID:        s.ID,
		Branch:    s.Branch,
		Triples:   s.Snapshot.Triples(),
		Message:   s.Message,
		CreatedAt: s.CreatedAt,
	}
	_, err := r.KGStashes.InsertOne(ctx, doc)
	return err
}

// stashSort orders stashes newest first. created_at has millisecond
// resolution in BSON, so _id breaks ties to keep pops deterministic.
var stashSort = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func (r *MongoRepository) PopStash(ctx context.Context, branch string) (*kg.Stash, error) {
	var doc stashDoc
	opts := options.FindOneAndDelete().SetSort(stashSort)
	err := r.KGStashes.FindOneAndDelete(ctx, bson.M{"branch": branch}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &kg.Stash{
		ID:        doc.ID,
		Branch:    doc.Branch,
		Snapshot:  kg.SnapshotOf(doc.Triples),
		Message:   doc.Message,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (r *MongoRepository) ListStashes(ctx context.Context, branch string) ([]*kg.Stash, error) {
	opts := options.Find().SetSort(stashSort)
	cursor, err := r.KGStashes.Find(ctx, bson.M{"branch": branch}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []stashDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	stashes := make([]*kg.Stash, 0, len(docs))
	for _, d := range docs {
		stashes = append(stashes, &kg.Stash{
			ID:        d.ID,
			Branch:    d.Branch,
			Snapshot:  kg.SnapshotOf(d.Triples),
			Message:   d.Message,
			CreatedAt: d.CreatedAt,
		})
	}
	return stashes, nil
}
