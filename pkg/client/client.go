// Package client is a Go consumer for the API: a thin HTTP client that
// speaks the server's JSON envelope, plus async state slices mirroring
// the admin frontend's store (see slices.go).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"studio-site-backend/internal/domain"
)

// envelope is the server's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError carries the server's user-facing message and HTTP status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to the API over HTTP. The bearer token is remembered
// across calls after Login/Register; safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs a bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken forgets the bearer token (logout).
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	return c.send(req, out)
}

func (c *Client) authorize(req *http.Request) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) send(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return &APIError{Status: res.StatusCode, Message: "Некорректный ответ сервера"}
	}
	if res.StatusCode >= 400 || !env.Success {
		return &APIError{Status: res.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// Register creates an account and remembers its token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.AuthPayload, error) {
	var payload domain.AuthPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &payload)
	if err != nil {
		return nil, err
	}
	c.SetToken(payload.Token)
	return &payload, nil
}

// Login authenticates and remembers the token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthPayload, error) {
	var payload domain.AuthPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &payload)
	if err != nil {
		return nil, err
	}
	c.SetToken(payload.Token)
	return &payload, nil
}

func (c *Client) GetProfile(ctx context.Context) (*domain.AuthPayload, error) {
	var payload domain.AuthPayload
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name, email, password string) (*domain.AuthPayload, error) {
	var payload domain.AuthPayload
	err := c.do(ctx, http.MethodPut, "/api/auth/profile", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ListContent(ctx context.Context) ([]domain.ContentBlock, error) {
	var blocks []domain.ContentBlock
	if err := c.do(ctx, http.MethodGet, "/api/content", nil, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (c *Client) GetContentBySection(ctx context.Context, section string) (*domain.ContentBlock, error) {
	var block domain.ContentBlock
	if err := c.do(ctx, http.MethodGet, "/api/content/"+section, nil, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// ContentCreate is the create payload. IsActive is a pointer so an unset
// flag is omitted from the JSON and the server default (active) applies.
type ContentCreate struct {
	Section    string `json:"section"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonLink string `json:"buttonLink,omitempty"`
	Order      int    `json:"order"`
	IsActive   *bool  `json:"isActive,omitempty"`
}

func (c *Client) CreateContent(ctx context.Context, req *ContentCreate) (*domain.ContentBlock, error) {
	var created domain.ContentBlock
	if err := c.do(ctx, http.MethodPost, "/api/content", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateContent(ctx context.Context, id string, upd *domain.ContentUpdate) (*domain.ContentBlock, error) {
	var block domain.ContentBlock
	if err := c.do(ctx, http.MethodPut, "/api/content/"+id, upd, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

func (c *Client) DeleteContent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/content/"+id, nil, nil)
}

// UploadImage sends a multipart upload and returns the public image URL.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/content/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

func (c *Client) SubmitApplication(ctx context.Context, app *domain.Application) (*domain.ApplicationSummary, error) {
	var out struct {
		Application domain.ApplicationSummary `json:"application"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/applications", app, &out); err != nil {
		return nil, err
	}
	return &out.Application, nil
}

func (c *Client) ListApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := c.do(ctx, http.MethodGet, "/api/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	if err := c.do(ctx, http.MethodGet, "/api/applications/"+id, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, upd *domain.ApplicationStatusUpdate) (*domain.Application, error) {
	var app domain.Application
	if err := c.do(ctx, http.MethodPut, "/api/applications/"+id, upd, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/applications/"+id, nil, nil)
}
