package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses. pending is the only mutable state; a decision is
// final.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Answer pairs one of the group's form questions with the applicant's
// response.
type Answer struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

// Application is one user's request to join one group.
//
// A unique index on (group_id, applicant_id) makes the pair unique for all
// time, not just while pending. A rejected applicant cannot re-apply; this
// mirrors the product's current policy.
type Application struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	GroupID     primitive.ObjectID `bson:"group_id" json:"groupId"`
	ApplicantID primitive.ObjectID `bson:"applicant_id" json:"applicantId"`
	Answers     []Answer           `bson:"answers" json:"answers"`
	Status      string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ApplicationView is an Application with the applicant's identity and skill
// summary resolved, as shown to the group leader.
type ApplicationView struct {
	Application `bson:",inline"`
	Applicant   UserSummary `bson:"applicant" json:"applicant"`
}
