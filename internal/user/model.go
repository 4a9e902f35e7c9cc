package user

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ID is the canonical user identifier at the core boundary. It is the hex
// form of the store's ObjectID; only the repository converts between the two.
type ID string

func (id ID) String() string { return string(id) }

// User represents one registered account as persisted in the users collection.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	CreatedAt    time.Time     `bson:"created_at"`
}

// PublicUser is the subset of a User that may cross the service boundary.
// The password hash is excluded by type shape, not by field filtering.
type PublicUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Public returns the client-safe projection of the user.
// Timestamps are rendered as ISO-8601 in UTC.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CoreID returns the canonical identifier for the core boundary.
func (u *User) CoreID() ID {
	return ID(u.ID.Hex())
}
