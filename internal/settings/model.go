package settings

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Settings holds one user's preference document. One record per user,
// created lazily on first write.
type Settings struct {
	ID          bson.ObjectID  `bson:"_id,omitempty"`
	UserID      bson.ObjectID  `bson:"user_id"`
	Preferences map[string]any `bson:"preferences"`
	UpdatedAt   time.Time      `bson:"updated_at"`
}

// View is the client-facing shape of a settings record.
type View struct {
	Preferences map[string]any `json:"preferences"`
	UpdatedAt   string         `json:"updated_at,omitempty"`
}

func (s *Settings) AsView() View {
	prefs := s.Preferences
	if prefs == nil {
		prefs = map[string]any{}
	}
	return View{
		Preferences: prefs,
		UpdatedAt:   s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
