package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sociopedia/server/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(postsCollection)}
}

type mongoPost struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"userId"`
	FirstName       string             `bson:"firstName"`
	LastName        string             `bson:"lastName"`
	Location        string             `bson:"location,omitempty"`
	Description     string             `bson:"description,omitempty"`
	PicturePath     string             `bson:"picturePath,omitempty"`
	UserPicturePath string             `bson:"userPicturePath,omitempty"`
	Likes           map[string]bool    `bson:"likes"`
	Comments        []string           `bson:"comments"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func fromDomainPost(p *domain.Post) mongoPost {
	likes := p.Likes
	if likes == nil {
		likes = map[string]bool{}
	}
	comments := p.Comments
	if comments == nil {
		comments = []string{}
	}
	return mongoPost{
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Location:        p.Location,
		Description:     p.Description,
		PicturePath:     p.PicturePath,
		UserPicturePath: p.UserPicturePath,
		Likes:           likes,
		Comments:        comments,
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
}

func (mp mongoPost) toDomain() *domain.Post {
	likes := mp.Likes
	if likes == nil {
		likes = map[string]bool{}
	}
	comments := mp.Comments
	if comments == nil {
		comments = []string{}
	}
	return &domain.Post{
		ID:              mp.ID.Hex(),
		UserID:          mp.UserID,
		FirstName:       mp.FirstName,
		LastName:        mp.LastName,
		Location:        mp.Location,
		Description:     mp.Description,
		PicturePath:     mp.PicturePath,
		UserPicturePath: mp.UserPicturePath,
		Likes:           likes,
		Comments:        comments,
		CreatedAt:       mp.CreatedAt,
		UpdatedAt:       mp.UpdatedAt,
	}
}

// Create inserts a new post document.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainPost(p)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, domain.NewStoreError("insert post", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, domain.NewStoreError("find post", err)
	}
	return mp.toDomain(), nil
}

// List returns every post, newest first.
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	return r.find(ctx, bson.M{})
}

// ListByUser returns the posts of userID, newest first.
func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Post, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// SetLike sets or unsets likes.<userID> in a single atomic update.
func (r *PostRepository) SetLike(ctx context.Context, postID, userID string, liked bool) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	field := "likes." + userID
	update := bson.M{"$set": bson.M{"updatedAt": time.Now().UTC()}}
	if liked {
		update["$set"].(bson.M)[field] = true
	} else {
		update["$unset"] = bson.M{field: ""}
	}

	var mp mongoPost
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, domain.NewStoreError("update likes", err)
	}
	return mp.toDomain(), nil
}

// EnsureIndexes creates the indexes used by the feed queries.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *PostRepository) find(ctx context.Context, filter bson.M) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, domain.NewStoreError("find posts", err)
	}
	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.NewStoreError("decode posts", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}
