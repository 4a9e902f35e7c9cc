package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/markitup/markitup-api/internal/user"
)

var ErrNotFound = errors.New("settings not found")

// Repository handles settings persistence in the settings collection.
type Repository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{coll: db.Collection("settings")}
}

// Get retrieves the settings record for a user.
func (r *Repository) Get(ctx context.Context, userID user.ID) (*Settings, error) {
	oid, err := bson.ObjectIDFromHex(userID.String())
	if err != nil {
		return nil, ErrNotFound
	}

	var s Settings
	err = r.coll.FindOne(ctx, bson.M{"user_id": oid}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &s, nil
}

// Upsert replaces the user's preferences wholesale, creating the record on
// first write. Last write wins; there are no merge guarantees below the
// preferences field.
func (r *Repository) Upsert(ctx context.Context, userID user.ID, preferences map[string]any) (*Settings, error) {
	oid, err := bson.ObjectIDFromHex(userID.String())
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q", userID)
	}

	now := time.Now().UTC()
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"user_id": oid},
		bson.M{"$set": bson.M{
			"preferences": preferences,
			"updated_at":  now,
		}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert settings: %w", err)
	}

	return &Settings{
		UserID:      oid,
		Preferences: preferences,
		UpdatedAt:   now,
	}, nil
}
