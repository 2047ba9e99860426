package user

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
)

const (
	fieldUsername  = "username"
	fieldEmail     = "email"
	fieldFullName  = "full_name"
	fieldBio       = "bio"
	fieldIsActive  = "is_active"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// keywordBool is stored as the keyword "true"/"false".
// Decoding also accepts a JSON bool.
type keywordBool bool

func (b keywordBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatBool(bool(b)))
}

func (b *keywordBool) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*b = keywordBool(v)
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("is_active: %w", err)
		}
		*b = keywordBool(parsed)
	case nil:
		*b = true
	default:
		return fmt.Errorf("is_active: unexpected %T", raw)
	}
	return nil
}

type userDoc struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Bio       string      `json:"bio"`
	IsActive  keywordBool `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func marshalUser(u domuser.User) ([]byte, error) {
	data, err := json.Marshal(userDoc{
		Username:  u.Username(),
		Email:     u.Email(),
		FullName:  u.FullName(),
		Bio:       u.Bio(),
		IsActive:  keywordBool(u.IsActive()),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	return data, nil
}

func unmarshalUser(id string, src []byte) (domuser.User, error) {
	doc := userDoc{IsActive: true}
	if err := json.Unmarshal(src, &doc); err != nil {
		return domuser.User{}, fmt.Errorf("unmarshal user %s: %w", id, err)
	}
	return domuser.Reconstruct(id, domuser.Fields{
		Username: doc.Username,
		Email:    doc.Email,
		FullName: doc.FullName,
		Bio:      doc.Bio,
		IsActive: bool(doc.IsActive),
	}, doc.CreatedAt, doc.UpdatedAt), nil
}
