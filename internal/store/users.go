// Package store implements the persistence layer over the mongo
// collections.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devconnect-io/devconnect/internal/models"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrDuplicateEmail = errors.New("store: email already registered")
)

type Users struct {
	col *mongo.Collection
}

func NewUsers(col *mongo.Collection) *Users {
	return &Users{col: col}
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (u *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := u.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (u *Users) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	cursor, err := u.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer cursor.Close(ctx)

	users := make(map[primitive.ObjectID]models.User, len(ids))
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users[user.ID] = user
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Insert persists a new user. The unique index on email turns a
// concurrent duplicate registration into ErrDuplicateEmail here rather
// than a second account.
func (u *Users) Insert(ctx context.Context, user *models.User) error {
	result, err := u.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (u *Users) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := u.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
