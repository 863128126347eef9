package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

func TestUpsertDocument_WithProfileOverwritesFields(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := upsertDocument("user_1", ports.ProfileUpdate{
		Profile: &ports.ProfileFields{Username: "alice", Email: "", Avatar: "a.png"},
		Role:    domain.RoleMember,
		SyncAt:  now,
	})

	set := doc["$set"].(bson.M)
	if set["username"] != "alice" || set["avatar"] != "a.png" {
		t.Fatalf("unexpected $set: %+v", set)
	}
	// empty email must still be written so stale values are cleared
	if v, ok := set["email"]; !ok || v != "" {
		t.Fatalf("expected email overwrite with empty string, got %+v", set)
	}
	if set["role"] != "member" || set["lastSyncAt"] != now {
		t.Fatalf("unexpected role/sync: %+v", set)
	}

	onInsert := doc["$setOnInsert"].(bson.M)
	if _, clash := onInsert["username"]; clash {
		t.Fatalf("username must not be in both $set and $setOnInsert")
	}
	if onInsert["whopUserId"] != "user_1" || onInsert["createdAt"] != now {
		t.Fatalf("unexpected $setOnInsert: %+v", onInsert)
	}
}

func TestUpsertDocument_WithoutProfileKeepsStoredFields(t *testing.T) {
	doc := upsertDocument("user_1", ports.ProfileUpdate{Role: domain.RoleGuest, SyncAt: time.Now()})

	set := doc["$set"].(bson.M)
	for _, field := range []string{"username", "email", "avatar"} {
		if _, ok := set[field]; ok {
			t.Fatalf("%s should not be overwritten without a profile", field)
		}
	}
	onInsert := doc["$setOnInsert"].(bson.M)
	if onInsert["username"] != domain.UnknownUsername {
		t.Fatalf("expected placeholder username on insert, got %v", onInsert["username"])
	}
}

func TestMongoUser_ToDomain(t *testing.T) {
	id := primitive.NewObjectID()
	u := (&mongoUser{
		ID:         id,
		WhopUserID: "user_1",
		Role:       "superuser",
		Metadata:   bson.M{"plan": "gold"},
	}).toDomain()

	if u.ID != id.Hex() {
		t.Fatalf("id = %s", u.ID)
	}
	if u.Role != domain.RoleGuest {
		t.Fatalf("unknown stored role should read back as guest, got %s", u.Role)
	}
	if u.Metadata["plan"] != "gold" {
		t.Fatalf("metadata lost: %+v", u.Metadata)
	}
}
