package db

import (
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("app_articles").
		Text("title", "standard").
		Keyword("category").
		Date("created_at").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "app_articles" {
		t.Errorf("name = %q, want app_articles", idx.Name)
	}
	if idx.Shards != 1 || idx.Replicas != 0 {
		t.Errorf("shards/replicas = %d/%d, want 1/0", idx.Shards, idx.Replicas)
	}
	if len(idx.Fields) != 3 {
		t.Fatalf("fields count = %d, want 3", len(idx.Fields))
	}
	if idx.Fields[0].Type != FieldText || idx.Fields[0].Analyzer != "standard" {
		t.Errorf("field[0] = %+v, want title text/standard", idx.Fields[0])
	}
	if idx.Fields[1].Name != "category" || idx.Fields[1].Type != FieldKeyword {
		t.Errorf("field[1] = %+v, want category keyword", idx.Fields[1])
	}
}

func TestIndexBuilder_Body(t *testing.T) {
	idx := NewIndex("app_users").
		Shards(2).
		Replicas(1).
		Keyword("username").
		Integer("views").
		Float("rating").
		Boolean("flag").
		MustBuild()

	body := idx.Body()
	settings := body["settings"].(map[string]any)
	if settings["number_of_shards"] != 2 || settings["number_of_replicas"] != 1 {
		t.Errorf("settings = %v", settings)
	}
	props := body["mappings"].(map[string]any)["properties"].(map[string]any)
	want := map[string]string{"username": "keyword", "views": "integer", "rating": "float", "flag": "boolean"}
	for name, typ := range want {
		f, ok := props[name].(map[string]any)
		if !ok {
			t.Fatalf("missing property %q", name)
		}
		if f["type"] != typ {
			t.Errorf("%s type = %v, want %s", name, f["type"], typ)
		}
		if _, ok := f["analyzer"]; ok {
			t.Errorf("%s should not carry an analyzer", name)
		}
	}
}

func TestIndexBuilder_Errors(t *testing.T) {
	tests := []struct {
		name string
		b    *IndexBuilder
	}{
		{"empty name", NewIndex("").Keyword("a")},
		{"uppercase name", NewIndex("Articles").Keyword("a")},
		{"no fields", NewIndex("idx")},
		{"duplicate field", NewIndex("idx").Keyword("a").Keyword("a")},
		{"zero shards", NewIndex("idx").Shards(0).Keyword("a")},
		{"negative replicas", NewIndex("idx").Replicas(-1).Keyword("a")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.b.Build(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMustBuild_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewIndex("").MustBuild()
}

func TestIsValidIndexName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"app_articles", true},
		{"articles", true},
		{"logs-2024.01", true},
		{"", false},
		{".", false},
		{"..", false},
		{"_hidden", false},
		{"-dash", false},
		{"+plus", false},
		{"Upper", false},
		{"has space", false},
		{"a/b", false},
		{"a:b", false},
		{"a#b", false},
	}
	for _, tc := range tests {
		if got := IsValidIndexName(tc.name); got != tc.want {
			t.Errorf("IsValidIndexName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
