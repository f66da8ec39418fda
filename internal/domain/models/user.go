package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a platform account.
//
// NOTE:
//   - Accounts are issued by the external identity provider; this service
//     never creates credentials. SubjectID is the provider's stable subject
//     identifier and is the lookup key during token verification.
//   - HackathonHistory is append-only: entries are written in bulk when a
//     group is disbanded and never mutated afterwards.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectID      string             `bson:"subject_id" json:"-"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	ProfilePicture string             `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Year           string             `bson:"year,omitempty" json:"year,omitempty"`
	Skills         []string           `bson:"skills,omitempty" json:"skills,omitempty"`

	HackathonHistory []HistoryEntry `bson:"hackathon_history,omitempty" json:"hackathonHistory,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HistoryEntry records one completed team engagement. Written once per
// member at disbandment.
type HistoryEntry struct {
	HackathonName string `bson:"hackathon_name" json:"hackathonName"`
	TeamName      string `bson:"team_name" json:"teamName"`
	Outcome       string `bson:"outcome" json:"outcome"`
}

// UserSummary is the public slice of a user resolved into group details,
// application lists, and chat messages. Email and Skills are populated only
// where the read model calls for them.
type UserSummary struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	ProfilePicture string             `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	Skills         []string           `bson:"skills,omitempty" json:"skills,omitempty"`
}
