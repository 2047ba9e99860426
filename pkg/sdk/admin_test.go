package esdocs

import (
	"context"
	"errors"
	"testing"
)

type mockAdmin struct {
	ensureFn func(ctx context.Context) error
	dropFn   func(ctx context.Context) error
	countsFn func(ctx context.Context) (map[string]int64, error)
}

func (m *mockAdmin) EnsureIndices(ctx context.Context) error { return m.ensureFn(ctx) }

func (m *mockAdmin) DropIndices(ctx context.Context) error { return m.dropFn(ctx) }

func (m *mockAdmin) Counts(ctx context.Context) (map[string]int64, error) { return m.countsFn(ctx) }

func TestClient_Stats(t *testing.T) {
	c := &Client{indices: &mockAdmin{
		countsFn: func(_ context.Context) (map[string]int64, error) {
			return map[string]int64{"app_articles": 4, "app_users": 1}, nil
		},
	}}

	stats, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats["app_articles"] != 4 || stats["app_users"] != 1 {
		t.Errorf("stats = %v", stats)
	}
}

func TestClient_Reset(t *testing.T) {
	var steps []string
	c := &Client{indices: &mockAdmin{
		dropFn:   func(_ context.Context) error { steps = append(steps, "drop"); return nil },
		ensureFn: func(_ context.Context) error { steps = append(steps, "ensure"); return nil },
	}}

	if err := c.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(steps) != 2 || steps[0] != "drop" || steps[1] != "ensure" {
		t.Errorf("steps = %v, want [drop ensure]", steps)
	}
}

func TestClient_Reset_DropFails(t *testing.T) {
	c := &Client{indices: &mockAdmin{
		dropFn: func(_ context.Context) error { return ErrBackendUnavailable },
		ensureFn: func(_ context.Context) error {
			t.Error("indices recreated after a failed drop")
			return nil
		},
	}}

	if err := c.Reset(context.Background()); !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}
