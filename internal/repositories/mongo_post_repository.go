package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// EnsureIndexes creates the indexes the feed queries rely on.
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *MongoPostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	posts := []models.Post{}
	if filter.AuthorIDs != nil && len(filter.AuthorIDs) == 0 {
		return posts, nil
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, buildPostFilter(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// buildPostFilter translates a PostFilter into a MongoDB query document.
func buildPostFilter(filter models.PostFilter) bson.M {
	query := bson.M{}
	switch {
	case filter.Active != nil:
		query["is_active"] = *filter.Active
	case !filter.IncludeInactive:
		query["is_active"] = true
	}
	if filter.AuthorID != 0 {
		query["author_id"] = filter.AuthorID
	}
	if len(filter.AuthorIDs) > 0 {
		// AuthorID and AuthorIDs together mean "AuthorID, if it is in AuthorIDs".
		ids := bson.M{"$in": filter.AuthorIDs}
		if filter.AuthorID != 0 {
			query["author_id"] = bson.M{"$eq": filter.AuthorID, "$in": filter.AuthorIDs}
		} else {
			query["author_id"] = ids
		}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		query["content"] = primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	}
	return query
}

func (r *MongoPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"content":    post.Content,
			"category":   post.Category,
			"updated_at": post.UpdatedAt,
		},
	}
	return r.updateOne(ctx, post.ID, update)
}

func (r *MongoPostRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"is_active": active}})
}

// UpdateLikeCount overwrites the cached count; it never increments.
func (r *MongoPostRepository) UpdateLikeCount(ctx context.Context, id string, count int64) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"like_count": count}})
}

func (r *MongoPostRepository) UpdateCommentCount(ctx context.Context, id string, count int64) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"comment_count": count}})
}

func (r *MongoPostRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update post %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) GetAllPostIDs(ctx context.Context) ([]string, error) {
	findOptions := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

func (r *MongoPostRepository) CountActiveByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"author_id": authorID, "is_active": true})
}

func (r *MongoPostRepository) Count(ctx context.Context, active *bool) (int64, error) {
	query := bson.M{}
	if active != nil {
		query["is_active"] = *active
	}
	return r.collection.CountDocuments(ctx, query)
}
