package user

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestPublicProjection(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	u := &User{
		ID:           bson.NewObjectID(),
		Name:         "Ann",
		Email:        "a@x.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		CreatedAt:    created,
	}

	pub := u.Public()
	assert.Equal(t, u.ID.Hex(), pub.ID)
	assert.Equal(t, "Ann", pub.Name)
	assert.Equal(t, "a@x.com", pub.Email)
	assert.Equal(t, "2025-03-14T09:26:53Z", pub.CreatedAt)

	raw, err := json.Marshal(pub)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "argon2id")
}

func TestPublicProjection_NonUTCTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	u := &User{
		ID:        bson.NewObjectID(),
		CreatedAt: time.Date(2025, 3, 14, 14, 26, 53, 0, loc),
	}

	// Rendered in UTC regardless of the stored zone
	assert.Equal(t, "2025-03-14T09:26:53Z", u.Public().CreatedAt)
}

func TestCoreID(t *testing.T) {
	oid := bson.NewObjectID()
	u := &User{ID: oid}

	id := u.CoreID()
	assert.Equal(t, oid.Hex(), id.String())

	// The canonical ID converts back to the same ObjectID
	back, err := bson.ObjectIDFromHex(id.String())
	require.NoError(t, err)
	assert.Equal(t, oid, back)
}
