package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDB represents a user document in the users collection.
type UserDB struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`        // System-assigned identifier
	Email     string             `bson:"email" json:"email"`              // Unique email, case-sensitive as stored
	Password  string             `bson:"password" json:"-"`               // Password digest, never serialized
	Name      string             `bson:"name,omitempty" json:"name"`      // Optional display name
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`    // Creation timestamp
}

// UserProfile is the public shape of a user returned by the auth endpoints.
type UserProfile struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Profile strips the credential fields from a user document.
func (u *UserDB) Profile() UserProfile {
	return UserProfile{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
	}
}
