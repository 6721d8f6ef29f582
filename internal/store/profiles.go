package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect-io/devconnect/internal/models"
)

type Profiles struct {
	col *mongo.Collection
}

func NewProfiles(col *mongo.Collection) *Profiles {
	return &Profiles{col: col}
}

func (p *Profiles) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	if err := p.col.FindOne(ctx, bson.M{"user": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find profile by user: %w", err)
	}
	return &profile, nil
}

func (p *Profiles) FindAll(ctx context.Context) ([]models.Profile, error) {
	cursor, err := p.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := make([]models.Profile, 0)
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}

func (p *Profiles) Insert(ctx context.Context, profile *models.Profile) error {
	result, err := p.col.InsertOne(ctx, profile)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		profile.ID = id
	}
	return nil
}

// Update applies a partial $set to the caller's profile and returns the
// document as it stands after the update. Absent fields are untouched.
func (p *Profiles) Update(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := p.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, bson.M{"$set": fields}, opts).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &profile, nil
}

func (p *Profiles) SetExperience(ctx context.Context, userID primitive.ObjectID, entries []models.Experience) (*models.Profile, error) {
	return p.Update(ctx, userID, bson.M{"experience": entries})
}

func (p *Profiles) SetEducation(ctx context.Context, userID primitive.ObjectID, entries []models.Education) (*models.Profile, error) {
	return p.Update(ctx, userID, bson.M{"education": entries})
}

func (p *Profiles) Delete(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := p.col.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
