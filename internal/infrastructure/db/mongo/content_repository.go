package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

const contentCollection = "contents"

// ContentRepository persists generated content in MongoDB.
type ContentRepository struct {
	coll *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{coll: db.Collection(contentCollection)}
}

type mongoContent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID    string             `bson:"owner_id"`
	Kind       string             `bson:"kind"`
	Language   string             `bson:"language"`
	Topic      string             `bson:"topic"`
	Difficulty string             `bson:"difficulty"`
	Title      string             `bson:"title"`
	Body       string             `bson:"body"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *ContentRepository) Insert(ctx context.Context, content *domain.Content) (*domain.Content, error) {
	doc := mongoContent{
		OwnerID:    content.OwnerID,
		Kind:       string(content.Kind),
		Language:   content.Language,
		Topic:      content.Topic,
		Difficulty: content.Difficulty,
		Title:      content.Title,
		Body:       content.Body,
		CreatedAt:  content.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}

	created := *content
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*domain.Content, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContentNotFound
	}

	var mc mongoContent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}
	return fromMongoContent(mc), nil
}

func (r *ContentRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Content, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoContent
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	contents := make([]domain.Content, 0, len(docs))
	for _, mc := range docs {
		contents = append(contents, *fromMongoContent(mc))
	}
	return contents, nil
}

func fromMongoContent(mc mongoContent) *domain.Content {
	return &domain.Content{
		ID:         mc.ID.Hex(),
		OwnerID:    mc.OwnerID,
		Kind:       domain.ContentKind(mc.Kind),
		Language:   mc.Language,
		Topic:      mc.Topic,
		Difficulty: mc.Difficulty,
		Title:      mc.Title,
		Body:       mc.Body,
		CreatedAt:  unixToTime(mc.CreatedAt),
	}
}
