package db

import (
	"encoding/json"
	"strconv"
)

// Query is a node of the search query DSL.
type Query interface {
	Source() map[string]any
}

// MultiMatchQuery runs a full-text match across several fields.
type MultiMatchQuery struct {
	Text   string
	Fields []string
}

// MultiMatch creates a multi_match query. Fields may carry boosts, see Boost.
func MultiMatch(text string, fields ...string) *MultiMatchQuery {
	return &MultiMatchQuery{Text: text, Fields: fields}
}

// Source renders the query.
func (q *MultiMatchQuery) Source() map[string]any {
	return map[string]any{
		"multi_match": map[string]any{
			"query":  q.Text,
			"fields": q.Fields,
		},
	}
}

// Boost appends a per-field boost factor (title, 2 -> "title^2").
func Boost(field string, factor float64) string {
	return field + "^" + strconv.FormatFloat(factor, 'f', -1, 64)
}

// TermQuery matches an exact value.
type TermQuery struct {
	Field string
	Value any
}

// Term creates a term query.
func Term(field string, value any) *TermQuery {
	return &TermQuery{Field: field, Value: value}
}

// Source renders the query.
func (q *TermQuery) Source() map[string]any {
	return map[string]any{"term": map[string]any{q.Field: q.Value}}
}

// TermsQuery matches any of the given exact values.
type TermsQuery struct {
	Field  string
	Values []string
}

// Terms creates a terms query.
func Terms(field string, values ...string) *TermsQuery {
	return &TermsQuery{Field: field, Values: values}
}

// Source renders the query.
func (q *TermsQuery) Source() map[string]any {
	return map[string]any{"terms": map[string]any{q.Field: q.Values}}
}

// MatchAllQuery matches every document.
type MatchAllQuery struct{}

// MatchAll creates a match_all query.
func MatchAll() MatchAllQuery { return MatchAllQuery{} }

// Source renders the query.
func (MatchAllQuery) Source() map[string]any {
	return map[string]any{"match_all": map[string]any{}}
}

// BoolQuery combines scoring (must) and non-scoring (filter) clauses.
type BoolQuery struct {
	must   []Query
	filter []Query
}

// NewBoolQuery creates an empty bool query.
func NewBoolQuery() *BoolQuery {
	return &BoolQuery{}
}

// Must adds scoring clauses that all have to match.
func (q *BoolQuery) Must(clauses ...Query) *BoolQuery {
	q.must = append(q.must, clauses...)
	return q
}

// Filter adds non-scoring clauses that all have to match.
func (q *BoolQuery) Filter(clauses ...Query) *BoolQuery {
	q.filter = append(q.filter, clauses...)
	return q
}

// IsEmpty reports whether no clause was added.
func (q *BoolQuery) IsEmpty() bool {
	return len(q.must) == 0 && len(q.filter) == 0
}

// Source renders the query. An empty bool query matches all documents.
func (q *BoolQuery) Source() map[string]any {
	body := map[string]any{}
	if len(q.must) > 0 {
		body["must"] = sources(q.must)
	}
	if len(q.filter) > 0 {
		body["filter"] = sources(q.filter)
	}
	if q.IsEmpty() {
		body["must"] = []map[string]any{MatchAll().Source()}
	}
	return map[string]any{"bool": body}
}

func sources(qs []Query) []map[string]any {
	out := make([]map[string]any, len(qs))
	for i, q := range qs {
		out[i] = q.Source()
	}
	return out
}

// SortField orders hits by a field.
type SortField struct {
	Field string
	Desc  bool
}

// SearchQuery is a paginated search request.
type SearchQuery struct {
	Query          Query
	From           int
	Size           int
	Sort           []SortField
	TrackTotalHits bool
}

// Body renders the search request body.
func (q *SearchQuery) Body() map[string]any {
	body := map[string]any{
		"from": q.From,
		"size": q.Size,
	}
	if q.Query != nil {
		body["query"] = q.Query.Source()
	} else {
		body["query"] = MatchAll().Source()
	}
	if q.TrackTotalHits {
		body["track_total_hits"] = true
	}
	if len(q.Sort) > 0 {
		sorts := make([]map[string]any, len(q.Sort))
		for i, s := range q.Sort {
			order := "asc"
			if s.Desc {
				order = "desc"
			}
			sorts[i] = map[string]any{s.Field: map[string]any{"order": order}}
		}
		body["sort"] = sorts
	}
	return body
}

// CountBody renders the count request body (query only).
func (q *SearchQuery) CountBody() map[string]any {
	if q.Query == nil {
		return map[string]any{"query": MatchAll().Source()}
	}
	return map[string]any{"query": q.Query.Source()}
}

// Hit is a single search hit.
type Hit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}

// SearchResult holds the hits of one page and the total match count.
type SearchResult struct {
	Total int64
	Hits  []Hit
}
