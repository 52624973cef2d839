package identity

import (
	"encoding/json"
	"net/url"
)

// User is the identity shape supplied by the Telegram WebApp host
// environment. It is read-only input to order submission.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

// Provider resolves the current external identity from whatever init data
// the host handed the request. A nil result means anonymous; absence or a
// malformed value must never block ordering.
type Provider interface {
	Current(initData string) *User
}

// InitDataProvider parses the Telegram WebApp init-data string, a
// URL-encoded query whose "user" field carries the user object as JSON.
type InitDataProvider struct{}

func (InitDataProvider) Current(initData string) *User {
	if initData == "" {
		return nil
	}
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil
	}
	raw := values.Get("user")
	if raw == "" {
		return nil
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	if u.ID == 0 {
		return nil
	}
	return &u
}
