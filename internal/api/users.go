package api

import (
	"encoding/json"
	"net/http"
)

// User is the server's public view of an account.
type User struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	EmailAddress string `json:"email_address"`
}

// UnmarshalJSON accepts profiles keyed by either "_id" (Mongo-style) or
// "id" (the register route's helper shape).
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.AltID
	}
	return nil
}

// LoginResult carries the bearer token plus the profile to cache locally.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResult
	if err := c.doJSON(http.MethodPost, c.url("user", "login"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account.
func (c *Client) Register(username, email, password string) (*User, error) {
	body := map[string]string{
		"username":      username,
		"email_address": email,
		"password":      password,
	}
	var out User
	if err := c.doJSON(http.MethodPost, c.url("user", "register"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
