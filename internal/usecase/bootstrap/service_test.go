package bootstrap

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockIndex struct {
	name       string
	err        error
	count      int64
	calls      int
	dropCalls  int
	countCalls int
}

func (m *mockIndex) EnsureIndex(_ context.Context) error {
	m.calls++
	return m.err
}

func (m *mockIndex) DropIndex(_ context.Context) error {
	m.dropCalls++
	return m.err
}

func (m *mockIndex) Count(_ context.Context) (int64, error) {
	m.countCalls++
	return m.count, m.err
}

func (m *mockIndex) IndexName() string { return m.name }

func TestEnsureIndices_All(t *testing.T) {
	a := &mockIndex{name: "app_articles"}
	u := &mockIndex{name: "app_users"}

	if err := New(a, u).EnsureIndices(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.calls != 1 || u.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", a.calls, u.calls)
	}
}

func TestEnsureIndices_StopsOnError(t *testing.T) {
	a := &mockIndex{name: "app_articles", err: errors.New("forbidden")}
	u := &mockIndex{name: "app_users"}

	err := New(a, u).EnsureIndices(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "app_articles") {
		t.Errorf("error should name the index: %v", err)
	}
	if u.calls != 0 {
		t.Error("second index must not be touched after a failure")
	}
}

func TestDropIndices(t *testing.T) {
	a := &mockIndex{name: "app_articles"}
	u := &mockIndex{name: "app_users"}

	if err := New(a, u).DropIndices(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.dropCalls != 1 || u.dropCalls != 1 {
		t.Errorf("drops = %d/%d, want 1/1", a.dropCalls, u.dropCalls)
	}

	a.err = errors.New("forbidden")
	if err := New(a, u).DropIndices(context.Background()); err == nil || !strings.Contains(err.Error(), "app_articles") {
		t.Errorf("err = %v, want failure naming app_articles", err)
	}
	if u.dropCalls != 1 {
		t.Error("second index must not be dropped after a failure")
	}
}

func TestCounts(t *testing.T) {
	counts, err := New(
		&mockIndex{name: "app_articles", count: 12},
		&mockIndex{name: "app_users", count: 3},
	).Counts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["app_articles"] != 12 || counts["app_users"] != 3 {
		t.Errorf("counts = %v", counts)
	}

	if _, err := New(&mockIndex{name: "x", err: errors.New("down")}).Counts(context.Background()); err == nil {
		t.Error("expected count error")
	}
}

func TestIndexNames(t *testing.T) {
	names := New(&mockIndex{name: "a"}, &mockIndex{name: "b"}).IndexNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v", names)
	}
}
