package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group lifecycle statuses. Transitions are one-way: open→locked,
// open→disbanded, locked→disbanded. A disbanded group never reopens.
const (
	GroupStatusOpen      = "open"
	GroupStatusLocked    = "locked"
	GroupStatusDisbanded = "disbanded"
)

// Group visibility values. Carried as data; no enforcement beyond listing.
const (
	VisibilityPublic      = "Public"
	VisibilityCollegeOnly = "College-only"
)

// Member limit bounds enforced at creation.
const (
	MinMemberLimit = 2
	MaxMemberLimit = 10
)

// FormQuestion is one custom question on a group's application form.
type FormQuestion struct {
	Question string `bson:"question" json:"question"`
}

// Group represents one hackathon team.
//
// Invariants maintained by the store layer:
//   - len(Members) <= MemberLimit at every instant; capacity-changing writes
//     are single conditional updates, never read-then-write.
//   - LeaderID is always present in Members.
type Group struct {
	ID            primitive.ObjectID   `bson:"_id" json:"id"`
	Name          string               `bson:"name" json:"name"`
	NameCI        string               `bson:"name_ci" json:"-"`
	HackathonName string               `bson:"hackathon_name" json:"hackathonName"`
	Description   string               `bson:"description" json:"description"`
	Tags          []string             `bson:"tags" json:"tags"`
	LeaderID      primitive.ObjectID   `bson:"leader_id" json:"leaderId"`
	Members       []primitive.ObjectID `bson:"members" json:"members"`
	MemberLimit   int                  `bson:"member_limit" json:"memberLimit"`
	Visibility    string               `bson:"visibility" json:"visibility"`

	ApplicationForm []FormQuestion `bson:"application_form" json:"applicationForm"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasMember reports whether uid is in the member set.
func (g Group) HasMember(uid primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m == uid {
			return true
		}
	}
	return false
}

// IsFull reports whether the member set has reached capacity.
func (g Group) IsFull() bool {
	return len(g.Members) >= g.MemberLimit
}

// GroupView is a Group with leader and member identities resolved for the
// detail endpoint.
type GroupView struct {
	Group
	Leader        UserSummary   `json:"leader"`
	MemberDetails []UserSummary `json:"memberDetails"`
}

// GroupListItem is a Group with only the leader resolved, used in paged
// listings where member details are not needed.
type GroupListItem struct {
	Group
	Leader UserSummary `json:"leader"`
}
