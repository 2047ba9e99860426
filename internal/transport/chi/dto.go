package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
	artpatch "github.com/kailas-cloud/esdocs/internal/domain/article/patch"
	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
	userpatch "github.com/kailas-cloud/esdocs/internal/domain/user/patch"
)

// ErrorResponseCode is the machine-readable error code of an ErrorResponse.
type ErrorResponseCode string

// Defines values for ErrorResponseCode.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed   ErrorResponseCode = "validation_failed"
	ErrorResponseCodeArticleNotFound    ErrorResponseCode = "article_not_found"
	ErrorResponseCodeUserNotFound       ErrorResponseCode = "user_not_found"
	ErrorResponseCodeNotFound           ErrorResponseCode = "not_found"
	ErrorResponseCodeConflict           ErrorResponseCode = "conflict"
	ErrorResponseCodeBackendUnavailable ErrorResponseCode = "backend_unavailable"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// RootResponse is the service banner.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthResponse is the body of GET /health/.
type HealthResponse struct {
	Status        string            `json:"status"`
	Elasticsearch string            `json:"elasticsearch"`
	Cluster       string            `json:"cluster,omitempty"`
	Checks        map[string]string `json:"checks"`
}

// ElasticsearchHealthResponse is the body of GET /health/elasticsearch.
type ElasticsearchHealthResponse struct {
	Elasticsearch string `json:"elasticsearch"`
}

// ArticleRequest is the body of POST /documents/articles.
type ArticleRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Views    int      `json:"views"`
	Rating   float64  `json:"rating"`
}

// ArticleUpdateRequest is the body of PUT /documents/articles/{id}. Absent or null fields are unchanged.
type ArticleUpdateRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Author   *string   `json:"author"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	Views    *int      `json:"views"`
	Rating   *float64  `json:"rating"`
}

// ArticleResponse is the JSON form of an article.
type ArticleResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Views     int      `json:"views"`
	Rating    float64  `json:"rating"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// ActiveFlag is the is_active attribute. It decodes from a JSON bool or
// a "true"/"false" string and always encodes as a string.
type ActiveFlag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *ActiveFlag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = ActiveFlag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New(`is_active must be a boolean or "true"/"false"`)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		*f = true
	case "false":
		*f = false
	default:
		return fmt.Errorf("is_active must be \"true\" or \"false\", got %q", s)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f ActiveFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatBool(bool(f)))
}

// UserRequest is the body of POST /documents/users.
type UserRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Bio      string      `json:"bio"`
	IsActive *ActiveFlag `json:"is_active"`
}

// UserUpdateRequest is the body of PUT /documents/users/{id}.
type UserUpdateRequest struct {
	Username *string     `json:"username"`
	Email    *string     `json:"email"`
	FullName *string     `json:"full_name"`
	Bio      *string     `json:"bio"`
	IsActive *ActiveFlag `json:"is_active"`
}

// UserResponse is the JSON form of a user.
type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Bio       string     `json:"bio"`
	IsActive  ActiveFlag `json:"is_active"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func articleFromRequest(req ArticleRequest) (domart.Article, error) {
	return domart.New(domart.Fields{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Tags:     req.Tags,
		Views:    req.Views,
		Rating:   req.Rating,
	})
}

func articlePatchFromRequest(req ArticleUpdateRequest) artpatch.Patch {
	return artpatch.New(artpatch.Fields{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Tags:     req.Tags,
		Views:    req.Views,
		Rating:   req.Rating,
	})
}

func articleToResponse(a domart.Article) ArticleResponse {
	tags := a.Tags()
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:        a.ID(),
		Title:     a.Title(),
		Content:   a.Content(),
		Author:    a.Author(),
		Category:  a.Category(),
		Tags:      tags,
		Views:     a.Views(),
		Rating:    a.Rating(),
		CreatedAt: formatTime(a.CreatedAt()),
		UpdatedAt: formatTime(a.UpdatedAt()),
	}
}

func userFromRequest(req UserRequest) (domuser.User, error) {
	active := true
	if req.IsActive != nil {
		active = bool(*req.IsActive)
	}
	return domuser.New(domuser.Fields{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Bio:      req.Bio,
		IsActive: active,
	})
}

func userPatchFromRequest(req UserUpdateRequest) userpatch.Patch {
	var active *bool
	if req.IsActive != nil {
		b := bool(*req.IsActive)
		active = &b
	}
	return userpatch.New(req.Username, req.Email, req.FullName, req.Bio, active)
}

func userToResponse(u domuser.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		FullName:  u.FullName(),
		Bio:       u.Bio(),
		IsActive:  ActiveFlag(u.IsActive()),
		CreatedAt: formatTime(u.CreatedAt()),
		UpdatedAt: formatTime(u.UpdatedAt()),
	}
}
