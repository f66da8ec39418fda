package models_test

import (
	"testing"

	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGroupHasMember(t *testing.T) {
	in := primitive.NewObjectID()
	out := primitive.NewObjectID()
	g := models.Group{Members: []primitive.ObjectID{in}}

	if !g.HasMember(in) {
		t.Error("member not recognized")
	}
	if g.HasMember(out) {
		t.Error("non-member recognized")
	}
}

func TestGroupIsFull(t *testing.T) {
	g := models.Group{
		MemberLimit: 2,
		Members:     []primitive.ObjectID{primitive.NewObjectID()},
	}
	if g.IsFull() {
		t.Error("group with a free slot reported full")
	}

	g.Members = append(g.Members, primitive.NewObjectID())
	if !g.IsFull() {
		t.Error("group at limit not reported full")
	}
}
