package article

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/esdocs/internal/domain"
)

func validFields() Fields {
	return Fields{
		Title:    "Go",
		Content:  "Channels and goroutines",
		Author:   "rob",
		Category: "tech",
		Tags:     []string{"go"},
		Views:    1,
		Rating:   4.5,
	}
}

func TestNew_Valid(t *testing.T) {
	a, err := New(validFields())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID() != "" {
		t.Errorf("ID() = %q, want empty", a.ID())
	}
	if !a.CreatedAt().IsZero() || !a.UpdatedAt().IsZero() {
		t.Error("timestamps set before Stamp")
	}
	if a.Title() != "Go" || a.Author() != "rob" || a.Category() != "tech" {
		t.Errorf("fields = %+v", a.Fields())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Fields)
	}{
		{"empty title", func(f *Fields) { f.Title = "" }},
		{"blank title", func(f *Fields) { f.Title = "   " }},
		{"title too long", func(f *Fields) { f.Title = strings.Repeat("t", MaxTitleLength+1) }},
		{"empty content", func(f *Fields) { f.Content = "" }},
		{"content too large", func(f *Fields) { f.Content = strings.Repeat("c", MaxContentSize+1) }},
		{"empty author", func(f *Fields) { f.Author = "" }},
		{"empty category", func(f *Fields) { f.Category = " " }},
		{"negative views", func(f *Fields) { f.Views = -1 }},
		{"negative rating", func(f *Fields) { f.Rating = -0.1 }},
		{"too many tags", func(f *Fields) { f.Tags = make([]string, MaxTags+1) }},
		{"tag too long", func(f *Fields) { f.Tags = []string{strings.Repeat("x", MaxTagLength+1)} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)
			if _, err := New(f); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"nil", nil, ""},
		{"trim and dedup", []string{" go ", "go", "rust"}, "go,rust"},
		{"drop empty", []string{"", "  ", "a"}, "a"},
		{"order kept", []string{"b", "a", "b"}, "b,a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.in)
			if got == nil {
				t.Fatal("NormalizeTags returned nil")
			}
			if s := strings.Join(got, ","); s != tt.want {
				t.Errorf("NormalizeTags(%v) = %q, want %q", tt.in, s, tt.want)
			}
		})
	}
}

func TestStamp(t *testing.T) {
	a, err := New(validFields())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	a = a.Stamp(created)
	if a.CreatedAt().Location() != time.UTC {
		t.Errorf("CreatedAt() not UTC: %v", a.CreatedAt())
	}
	if !a.CreatedAt().Equal(created) || !a.UpdatedAt().Equal(created) {
		t.Errorf("timestamps = (%v, %v)", a.CreatedAt(), a.UpdatedAt())
	}

	later := created.Add(time.Hour)
	a = a.Stamp(later)
	if !a.CreatedAt().Equal(created) {
		t.Errorf("CreatedAt() changed to %v", a.CreatedAt())
	}
	if !a.UpdatedAt().Equal(later) {
		t.Errorf("UpdatedAt() = %v, want %v", a.UpdatedAt(), later)
	}
}

func TestWithID(t *testing.T) {
	a, _ := New(validFields())
	b := a.WithID("abc")
	if b.ID() != "abc" {
		t.Errorf("ID() = %q", b.ID())
	}
	if a.ID() != "" {
		t.Error("WithID mutated the receiver")
	}
}
