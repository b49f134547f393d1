package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
)

func documentIndexModels() []mongo.IndexModel {
	// partialFilterExpression does not support equality to null, so live
	// documents are matched by the absence of deleted_at. Inserts omit the
	// field and soft delete $sets it, which keeps the two in sync.
	idxSourceURL := mongo.IndexModel{
		Keys: bson.D{{Key: "source_url", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_source_url").
			SetPartialFilterExpression(bson.M{"deleted_at": bson.M{"$exists": false}}),
	}
	idxAuthority := mongo.IndexModel{
		Keys:    bson.D{{Key: "authority", Value: 1}, {Key: "doc_type", Value: 1}},
		Options: options.Index().SetName("authority_doc_type"),
	}
	return []mongo.IndexModel{idxSourceURL, idxAuthority}
}

func (r *MongoRepository) EnsureDocumentIndexes(ctx context.Context) error {
	_, err := r.Documents.Indexes().CreateMany(ctx, documentIndexModels())
	return err
}

func (r *MongoRepository) CreateDocument(ctx context.Context, doc *model.CanonicalDocument) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := r.Documents.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) GetDocument(ctx context.Context, id string) (*model.CanonicalDocument, error) {
	var doc model.CanonicalDocument
	err := r.Documents.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *MongoRepository) UpdateDocument(ctx context.Context, doc *model.CanonicalDocument) error {
	doc.UpdatedAt = time.Now().UTC()

	res, err := r.Documents.UpdateOne(ctx,
		bson.M{"_id": doc.ID, "deleted_at": nil},
		bson.M{"$set": bson.M{
			"title":               doc.Title,
			"doc_type":            doc.DocType,
			"source_url":          doc.SourceURL,
			"content_fingerprint": doc.ContentFingerprint,
			"published_at":        doc.PublishedAt,
			"updated_at":          doc.UpdatedAt,
			"updated_by":          doc.UpdatedBy,
		}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteDocument(ctx context.Context, id, deletedBy string) error {
	now := time.Now().UTC()
	res, err := r.Documents.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now, "updated_by": deletedBy}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) FindDocuments(ctx context.Context, filter model.DocumentFilter) ([]*model.CanonicalDocument, error) {
	query := bson.M{}
	if !filter.IncludeDeleted {
		query["deleted_at"] = nil
	}
	if filter.Authority != "" {
		query["authority"] = filter.Authority
	}
	if filter.AuthorityKind != "" {
		query["authority_kind"] = filter.AuthorityKind
	}
	if filter.DocType != "" {
		query["doc_type"] = filter.DocType
	}
	if filter.TitleQuery != "" {
		query["title"] = bson.M{"$regex": primitive.Regex{Pattern: filter.TitleQuery, Options: "i"}}
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.Documents.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*model.CanonicalDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *MongoRepository) AttachExtension(ctx context.Context, id string, ext model.Extension) error {
	now := time.Now().UTC()
	ext.AttachedAt = now

	// one extension per type: replace in place when present
	res, err := r.Documents.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil, "extensions.type": ext.Type},
		bson.M{"$set": bson.M{"extensions.$": ext, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.Documents.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil},
		bson.M{"$push": bson.M{"extensions": ext}, "$set": bson.M{"updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
