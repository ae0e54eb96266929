package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

const UsersCollection = "users"

type UserMongoRepository struct {
	coll *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Database) *UserMongoRepository {
	return &UserMongoRepository{coll: db.Collection(UsersCollection)}
}

// CreateUser depends on the unique email index created by db.EnsureIndexes.
func (r *UserMongoRepository) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return user.ErrEmailTaken
	}
	if err != nil {
		return httperr.ErrStore("create user", err)
	}
	return nil
}

func (r *UserMongoRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserMongoRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, filter).Decode(&u)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, httperr.ErrStore("find user", err)
	}
	return &u, nil
}

func (r *UserMongoRepository) UpdateUser(ctx context.Context, id string, patch user.Patch) (*models.User, error) {
	if patch.IsEmpty() {
		return r.FindUserByID(ctx, id)
	}

	set := patch.Values()
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, user.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, user.ErrEmailTaken
	}
	if err != nil {
		return nil, httperr.ErrStore("update user", err)
	}
	return &u, nil
}

func (r *UserMongoRepository) ListUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fullName", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, httperr.ErrStore("list users", err)
	}

	users := make([]models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, httperr.ErrStore("decode users", err)
	}
	return users, nil
}

var _ user.Repository = (*UserMongoRepository)(nil)
