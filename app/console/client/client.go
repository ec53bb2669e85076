// Package client talks to the site's JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New targets the server root, e.g. "http://localhost:1323"; the /api prefix is added here.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken sets the admin session token sent on every request. Empty clears it.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

// Content

func (c *Client) Content(ctx context.Context) (map[string]string, error) {
	content := map[string]string{}
	if err := c.doJSON(ctx, http.MethodGet, "/content", nil, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// Upsert stores value under key. It satisfies sections.Committer.
func (c *Client) Upsert(ctx context.Context, key, value string) error {
	body := map[string]string{"key": key, "value": value}
	return c.doJSON(ctx, http.MethodPost, "/content", body, nil)
}

// Admin session

type Session struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

func (c *Client) OpenSession(ctx context.Context, secret string) (*Session, error) {
	var s Session
	if err := c.doJSON(ctx, http.MethodPost, "/admin/session", map[string]string{"secret": secret}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) SessionStatus(ctx context.Context) (bool, error) {
	var res struct {
		IsAdmin bool `json:"isAdmin"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/session", nil, &res); err != nil {
		return false, err
	}
	return res.IsAdmin, nil
}

func (c *Client) CloseSession(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/session", nil, nil)
}

// Posts

type Post struct {
	ID       uint   `json:"id"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Content  string `json:"content"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}

type NewPost struct {
	AuthorName  string `json:"authorName"`
	AuthorTitle string `json:"authorTitle,omitempty"`
	Content     string `json:"content"`
	DateStr     string `json:"dateStr,omitempty"`
}

func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.doJSON(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, p *NewPost) error {
	return c.doJSON(ctx, http.MethodPost, "/posts", p, nil)
}

// LikePost adds one like and returns the new count.
func (c *Client) LikePost(ctx context.Context, id uint) (int, error) {
	var res struct {
		Likes int `json:"likes"`
	}
	body := map[string]any{"id": id, "type": "like"}
	if err := c.doJSON(ctx, http.MethodPatch, "/posts", body, &res); err != nil {
		return 0, err
	}
	return res.Likes, nil
}

func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, "/posts?"+idQuery(id), nil, nil)
}

// Newcomers

type Newcomer struct {
	ID               uint      `json:"id,omitempty"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	BirthDate        string    `json:"birth_date"`
	Address          string    `json:"address"`
	Description      string    `json:"description"`
	RegistrationDate time.Time `json:"registration_date,omitzero"`
}

func (c *Client) Newcomers(ctx context.Context) ([]Newcomer, error) {
	var list []Newcomer
	if err := c.doJSON(ctx, http.MethodGet, "/newcomers", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) RegisterNewcomer(ctx context.Context, n *Newcomer) error {
	return c.doJSON(ctx, http.MethodPost, "/newcomers", n, nil)
}

func (c *Client) UpdateNewcomer(ctx context.Context, n *Newcomer) error {
	return c.doJSON(ctx, http.MethodPut, "/newcomers", n, nil)
}

func (c *Client) DeleteNewcomer(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, "/newcomers?"+idQuery(id), nil, nil)
}

// QT

// QT returns the stored record for date, or nil when the day has none.
func (c *Client) QT(ctx context.Context, date string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/qt?"+url.Values{"date": {date}}.Encode(), nil, &raw); err != nil {
		return nil, err
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return nil, nil
	}
	return raw, nil
}

func (c *Client) SaveQT(ctx context.Context, date string, data any) error {
	body := map[string]any{"date_key": date, "data": data}
	return c.doJSON(ctx, http.MethodPost, "/qt", body, nil)
}

// Assistant

func (c *Client) Chat(ctx context.Context, prompt, systemInstruction string) (string, error) {
	var res struct {
		Text string `json:"text"`
	}
	body := map[string]string{"prompt": prompt, "systemInstruction": systemInstruction}
	if err := c.doJSON(ctx, http.MethodPost, "/chat", body, &res); err != nil {
		return "", err
	}
	return res.Text, nil
}

func (c *Client) Summary(ctx context.Context, title, pastor, passage string) (string, error) {
	var res struct {
		Summary string `json:"summary"`
	}
	body := map[string]string{"title": title, "pastor": pastor, "passage": passage}
	if err := c.doJSON(ctx, http.MethodPost, "/summary", body, &res); err != nil {
		return "", err
	}
	return res.Summary, nil
}

func idQuery(id uint) string {
	return url.Values{"id": {strconv.FormatUint(uint64(id), 10)}}.Encode()
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
