package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/scrapegraph"
)

// graphDoc is the persisted shape. Node and edge IDs may contain characters
// MongoDB rejects in field names, so maps are flattened to arrays.
type graphDoc struct {
	ScraperID     string             `bson:"scraper_id"`
	Version       int64              `bson:"version"`
	ParentVersion int64              `bson:"parent_version"`
	Nodes         []scrapegraph.Node `bson:"nodes"`
	Edges         []scrapegraph.Edge `bson:"edges"`
	UpdatedBy     string             `bson:"updated_by,omitempty"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toGraphDoc(g *scrapegraph.Graph) *graphDoc {
	d := &graphDoc{
		ScraperID:     g.ScraperID,
		Version:       g.Version,
		ParentVersion: g.ParentVersion,
		Nodes:         make([]scrapegraph.Node, 0, len(g.Nodes)),
		Edges:         make([]scrapegraph.Edge, 0, len(g.Edges)),
		UpdatedBy:     g.UpdatedBy,
		UpdatedAt:     g.UpdatedAt,
	}
	for _, n := range g.Nodes {
		d.Nodes = append(d.Nodes, n)
	}
	for _, e := range g.Edges {
		d.Edges = append(d.Edges, e)
	}
	return d
}

func (d *graphDoc) toGraph() *scrapegraph.Graph {
	g := scrapegraph.New(d.ScraperID)
	g.Version = d.Version
	g.ParentVersion = d.ParentVersion
	g.UpdatedBy = d.UpdatedBy
	g.UpdatedAt = d.UpdatedAt
	for _, n := range d.Nodes {
		g.Nodes[n.ID] = n
	}
	for _, e := range d.Edges {
		g.Edges[e.ID] = e
	}
	return g
}

func graphIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{{
		Keys:    bson.D{{Key: "scraper_id", Value: 1}, {Key: "version", Value: -1}},
		Options: options.Index().SetUnique(true).SetName("uniq_scraper_version"),
	}}
}

func (r *MongoRepository) EnsureGraphIndexes(ctx context.Context) error {
	_, err := r.GraphVersions.Indexes().CreateMany(ctx, graphIndexModels())
	return err
}

func (r *MongoRepository) HeadGraph(ctx context.Context, scraperID string) (*scrapegraph.Graph, error) {
	var doc graphDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})
	err := r.GraphVersions.FindOne(ctx, bson.M{"scraper_id": scraperID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toGraph(), nil
}

func (r *MongoRepository) GetGraphVersion(ctx context.Context, scraperID string, version int64) (*scrapegraph.Graph, error) {
	var doc graphDoc
	err := r.GraphVersions.FindOne(ctx, bson.M{"scraper_id": scraperID, "version": version}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toGraph(), nil
}

func (r *MongoRepository) ListGraphVersions(ctx context.Context, scraperID string) ([]model.GraphVersionInfo, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetProjection(bson.M{"nodes": 0, "edges": 0})

	cursor, err := r.GraphVersions.Find(ctx, bson.M{"scraper_id": scraperID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []graphDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	infos := make([]model.GraphVersionInfo, 0, len(docs))
	for _, d := range docs {
		infos = append(infos, model.GraphVersionInfo{
			ScraperID:     d.ScraperID,
			Version:       d.Version,
			ParentVersion: d.ParentVersion,
			UpdatedBy:     d.UpdatedBy,
			UpdatedAt:     d.UpdatedAt,
		})
	}

	// projection dropped the payload, so counts need a second lightweight pass
	for i := range infos {
		counts, err := r.graphElementCounts(ctx, scraperID, infos[i].Version)
		if err != nil {
			return nil, err
		}
		infos[i].NodeCount = counts[0]
		infos[i].EdgeCount = counts[1]
	}
	return infos, nil
}

func (r *MongoRepository) graphElementCounts(ctx context.Context, scraperID string, version int64) ([2]int, error) {
	var out struct {
		NodeCount int `bson:"node_count"`
		EdgeCount int `bson:"edge_count"`
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"scraper_id": scraperID, "version": version}}},
		{{Key: "$project", Value: bson.M{
			"node_count": bson.M{"$size": "$nodes"},
			"edge_count": bson.M{"$size": "$edges"},
		}}},
	}
	cursor, err := r.GraphVersions.Aggregate(ctx, pipeline)
	if err != nil {
		return [2]int{}, err
	}
	defer cursor.Close(ctx)
	if cursor.Next(ctx) {
		if err := cursor.Decode(&out); err != nil {
			return [2]int{}, err
		}
	}
	return [2]int{out.NodeCount, out.EdgeCount}, nil
}

func (r *MongoRepository) InsertGraphVersion(ctx context.Context, g *scrapegraph.Graph) error {
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = time.Now().UTC()
	}
	_, err := r.GraphVersions.InsertOne(ctx, toGraphDoc(g))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}
