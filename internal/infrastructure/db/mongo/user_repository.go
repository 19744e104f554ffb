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

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"firstName"`
	LastName      string             `bson:"lastName"`
	Email         string             `bson:"email"`
	Password      string             `bson:"password"`
	PicturePath   string             `bson:"picturePath"`
	Friends       []string           `bson:"friends"`
	Location      string             `bson:"location,omitempty"`
	Occupation    string             `bson:"occupation,omitempty"`
	ViewedProfile int                `bson:"viewedProfile"`
	Impressions   int                `bson:"impressions"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func fromDomainUser(u *domain.User) mongoUser {
	friends := u.Friends
	if friends == nil {
		friends = []string{}
	}
	return mongoUser{
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Password:      u.PasswordHash,
		PicturePath:   u.PicturePath,
		Friends:       friends,
		Location:      u.Location,
		Occupation:    u.Occupation,
		ViewedProfile: u.ViewedProfile,
		Impressions:   u.Impressions,
		CreatedAt:     u.CreatedAt.UTC(),
		UpdatedAt:     u.UpdatedAt.UTC(),
	}
}

func (mu mongoUser) toDomain() *domain.User {
	friends := mu.Friends
	if friends == nil {
		friends = []string{}
	}
	return &domain.User{
		ID:            mu.ID.Hex(),
		FirstName:     mu.FirstName,
		LastName:      mu.LastName,
		Email:         mu.Email,
		PasswordHash:  mu.Password,
		PicturePath:   mu.PicturePath,
		Friends:       friends,
		Location:      mu.Location,
		Occupation:    mu.Occupation,
		ViewedProfile: mu.ViewedProfile,
		Impressions:   mu.Impressions,
		CreatedAt:     mu.CreatedAt,
		UpdatedAt:     mu.UpdatedAt,
	}
}

// Create inserts the user. A duplicate email yields StoreError{ErrUserExists}.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainUser(user)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewStoreError("insert user", domain.ErrUserExists)
		}
		return nil, domain.NewStoreError("insert user", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByIDs returns the users that exist among ids, in no particular order.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, domain.NewStoreError("find users", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.NewStoreError("decode users", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID string) error {
	return r.updateFriends(ctx, userID, bson.M{"$addToSet": bson.M{"friends": friendID}})
}

func (r *UserRepository) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return r.updateFriends(ctx, userID, bson.M{"$pull": bson.M{"friends": friendID}})
}

// EnsureIndexes creates the unique email index backing login lookups.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStoreError("find user", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) updateFriends(ctx context.Context, userID string, change bson.M) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	change["$set"] = bson.M{"updatedAt": time.Now().UTC()}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, change)
	if err != nil {
		return domain.NewStoreError("update friends", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// objectIDs parses the valid hex ids and drops the rest.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
