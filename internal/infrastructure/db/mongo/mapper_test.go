package mongo

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/OJOMB/user-registry/internal/core/domain"
	"github.com/OJOMB/user-registry/internal/core/ports"
)

func mustMarshal(t *testing.T, doc interface{}) bson.Raw {
	t.Helper()
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return raw
}

func validDoc(id uuid.UUID) bson.M {
	return bson.M{
		"_id":        id.String(),
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane@example.com",
		"dob":        "1985-06-15",
		"created_at": "2024-03-01T10:00:00Z",
		"updated_at": "2024-03-02T11:30:00Z",
	}
}

func TestUserFromRaw_Valid(t *testing.T) {
	id := uuid.New()
	raw := mustMarshal(t, validDoc(id))

	u, err := userFromRaw(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if u.ID != id {
		t.Errorf("unexpected id: %s", u.ID)
	}
	if u.FirstName != "Jane" || u.LastName != "Doe" || u.Email != "jane@example.com" {
		t.Errorf("unexpected fields: %+v", u)
	}
	if want := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC); !u.DateOfBirth.Equal(want) {
		t.Errorf("unexpected dob: %v", u.DateOfBirth)
	}
	if want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC); !u.CreatedAt.Equal(want) {
		t.Errorf("unexpected created_at: %v", u.CreatedAt)
	}
	if want := time.Date(2024, 3, 2, 11, 30, 0, 0, time.UTC); !u.UpdatedAt.Equal(want) {
		t.Errorf("unexpected updated_at: %v", u.UpdatedAt)
	}
}

func TestUserFromRaw_OptionalNamesAbsent(t *testing.T) {
	doc := validDoc(uuid.New())
	delete(doc, "first_name")
	delete(doc, "last_name")

	u, err := userFromRaw(mustMarshal(t, doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if u.FirstName != "" || u.LastName != "" {
		t.Errorf("expected empty names, got %q %q", u.FirstName, u.LastName)
	}
}

func TestUserFromRaw_Malformed(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(bson.M)
		reason string
	}{
		{
			name:   "missing email",
			mutate: func(d bson.M) { delete(d, "email") },
			reason: "email missing",
		},
		{
			name:   "missing dob",
			mutate: func(d bson.M) { delete(d, "dob") },
			reason: "dob missing",
		},
		{
			name:   "wrong type for email",
			mutate: func(d bson.M) { d["email"] = int32(7) },
			reason: "incorrect type for email",
		},
		{
			name:   "wrong type for optional name",
			mutate: func(d bson.M) { d["first_name"] = int64(1) },
			reason: "incorrect type for first_name",
		},
		{
			name:   "invalid uuid",
			mutate: func(d bson.M) { d["_id"] = "not-a-uuid" },
			reason: "invalid uuid",
		},
		{
			name:   "invalid dob",
			mutate: func(d bson.M) { d["dob"] = "15/06/1985" },
			reason: "invalid dob format",
		},
		{
			name:   "invalid created_at",
			mutate: func(d bson.M) { d["created_at"] = "yesterday" },
			reason: "invalid created_at format",
		},
		{
			name:   "invalid updated_at",
			mutate: func(d bson.M) { d["updated_at"] = "2024-03-02" },
			reason: "invalid updated_at format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDoc(uuid.New())
			tc.mutate(doc)

			_, err := userFromRaw(mustMarshal(t, doc))
			if !errors.Is(err, ports.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.reason) {
				t.Errorf("expected reason %q in %q", tc.reason, err.Error())
			}
		})
	}
}

func TestDocFromUser_RoundTrip(t *testing.T) {
	u := &domain.User{
		ID:          uuid.New(),
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		DateOfBirth: time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 3, 2, 11, 30, 0, 0, time.UTC),
	}

	doc := docFromUser(u)
	if doc.ID != u.ID.String() || doc.DOB != "1985-06-15" {
		t.Fatalf("unexpected doc: %+v", doc)
	}

	back, err := userFromRaw(mustMarshal(t, doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if back.ID != u.ID || back.Email != u.Email ||
		!back.DateOfBirth.Equal(u.DateOfBirth) ||
		!back.CreatedAt.Equal(u.CreatedAt) || !back.UpdatedAt.Equal(u.UpdatedAt) {
		t.Errorf("round trip mismatch: %+v vs %+v", back, u)
	}
}
