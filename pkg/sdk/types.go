package esdocs

import "time"

// Article is a stored article.
type Article struct {
	ID        string
	Title     string
	Content   string
	Author    string
	Category  string
	Tags      []string
	Views     int
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticleInput holds the fields of a new article.
type ArticleInput struct {
	Title    string
	Content  string
	Author   string
	Category string
	Tags     []string
	Views    int
	Rating   float64
}

// ArticlePatch is a partial article update. Nil fields are unchanged.
type ArticlePatch struct {
	Title    *string
	Content  *string
	Author   *string
	Category *string
	Tags     *[]string
	Views    *int
	Rating   *float64
}

// SearchQuery selects articles. Empty fields are not applied;
// a zero Limit means 10.
type SearchQuery struct {
	Query    string
	Category string
	Tags     []string // any-of
	Limit    int
	Offset   int
}

// SearchPage is one page of search hits in relevance order.
type SearchPage struct {
	Articles []Article
	Total    int64
}

// User is a stored user.
type User struct {
	ID        string
	Username  string
	Email     string
	FullName  string
	Bio       string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserInput holds the fields of a new user. IsActive defaults to true when nil.
type UserInput struct {
	Username string
	Email    string
	FullName string
	Bio      string
	IsActive *bool
}

// UserPatch is a partial user update. Nil fields are unchanged.
type UserPatch struct {
	Username *string
	Email    *string
	FullName *string
	Bio      *string
	IsActive *bool
}
