package patch

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/esdocs/internal/domain"
	"github.com/kailas-cloud/esdocs/internal/domain/user"
)

func stored() user.User {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return user.Reconstruct("u1", user.Fields{
		Username: "gopher",
		Email:    "gopher@example.com",
		FullName: "Go Pher",
		IsActive: true,
	}, ts, ts)
}

func TestApply_Deactivate(t *testing.T) {
	off := false
	got, err := New(nil, nil, nil, nil, &off).Apply(stored())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsActive() {
		t.Error("IsActive() = true")
	}
	if got.Username() != "gopher" || got.ID() != "u1" {
		t.Errorf("unpatched fields changed: %+v", got.Fields())
	}
}

func TestApply_Bio(t *testing.T) {
	bio := "new bio"
	got, err := New(nil, nil, nil, &bio, nil).Apply(stored())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Bio() != "new bio" || !got.IsActive() {
		t.Errorf("fields = %+v", got.Fields())
	}
}

func TestApply_InvalidEmail(t *testing.T) {
	bad := "nope"
	if _, err := New(nil, &bad, nil, nil, nil).Apply(stored()); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}
