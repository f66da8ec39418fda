package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message content kinds.
const (
	ContentTypeText         = "text"
	ContentTypeMedia        = "media"
	ContentTypeNotification = "notification"
)

// MaxMessageContentLen bounds the body of a chat message.
const MaxMessageContentLen = 2000

// Message is one chat utterance. Immutable once created; always scoped to
// exactly one group.
type Message struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"senderId"`
	GroupID     primitive.ObjectID `bson:"group_id" json:"groupId"`
	Content     string             `bson:"content" json:"content"`
	ContentType string             `bson:"content_type" json:"contentType"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// MessageView is a Message with the sender's display identity resolved. It
// is the shape delivered over the wire, both in history reads and in live
// broadcasts.
type MessageView struct {
	Message `bson:",inline"`
	Sender  UserSummary `bson:"sender" json:"sender"`
}
