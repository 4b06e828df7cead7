package client

import (
	"context"
	"errors"
	"sync"

	"studio-site-backend/internal/domain"
)

// sliceState is the shared async-status portion of every slice. Each
// operation runs pending → fulfilled / rejected: pending raises
// IsLoading, fulfilled sets IsSuccess and merges data, rejected sets
// IsError and the server's message.
type sliceState struct {
	mu        sync.RWMutex
	isLoading bool
	isError   bool
	isSuccess bool
	message   string
}

// SliceStatus is a point-in-time snapshot of a slice's flags.
type SliceStatus struct {
	IsLoading bool
	IsError   bool
	IsSuccess bool
	Message   string
}

func (s *sliceState) Status() SliceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SliceStatus{
		IsLoading: s.isLoading,
		IsError:   s.isError,
		IsSuccess: s.isSuccess,
		Message:   s.message,
	}
}

// Reset clears the status flags, leaving data in place.
func (s *sliceState) Reset() {
	s.mu.Lock()
	s.isLoading = false
	s.isError = false
	s.isSuccess = false
	s.message = ""
	s.mu.Unlock()
}

func (s *sliceState) pending() {
	s.mu.Lock()
	s.isLoading = true
	s.isError = false
	s.isSuccess = false
	s.message = ""
	s.mu.Unlock()
}

func (s *sliceState) fulfilled() {
	s.mu.Lock()
	s.isLoading = false
	s.isSuccess = true
	s.mu.Unlock()
}

func (s *sliceState) rejected(err error) {
	msg := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	s.mu.Lock()
	s.isLoading = false
	s.isError = true
	s.message = msg
	s.mu.Unlock()
}

// AuthSlice holds the signed-in user. Server-authoritative: the user is
// whatever the last successful call returned.
type AuthSlice struct {
	sliceState
	api  *Client
	user *domain.AuthPayload
}

func NewAuthSlice(api *Client) *AuthSlice {
	return &AuthSlice{api: api}
}

func (s *AuthSlice) User() *domain.AuthPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *AuthSlice) Register(ctx context.Context, name, email, password string) error {
	s.pending()
	payload, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.rejected(err)
		return err
	}
	s.mu.Lock()
	s.user = payload
	s.mu.Unlock()
	s.fulfilled()
	return nil
}

func (s *AuthSlice) Login(ctx context.Context, email, password string) error {
	s.pending()
	payload, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.rejected(err)
		return err
	}
	s.mu.Lock()
	s.user = payload
	s.mu.Unlock()
	s.fulfilled()
	return nil
}

// Logout drops the local session; there is no server-side call.
func (s *AuthSlice) Logout() {
	s.api.ClearToken()
	s.mu.Lock()
	s.user = nil
	s.isLoading = false
	s.isError = false
	s.isSuccess = false
	s.message = ""
	s.mu.Unlock()
}

// ContentSlice mirrors the admin content store: the full block list plus
// async flags. Mutations merge the server's authoritative result.
type ContentSlice struct {
	sliceState
	api    *Client
	blocks []domain.ContentBlock
}

func NewContentSlice(api *Client) *ContentSlice {
	return &ContentSlice{api: api}
}

func (s *ContentSlice) Blocks() []domain.ContentBlock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ContentBlock, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Fetch replaces the list with the server's active blocks.
func (s *ContentSlice) Fetch(ctx context.Context) error {
	s.pending()
	blocks, err := s.api.ListContent(ctx)
	if err != nil {
		s.rejected(err)
		return err
	}
	s.mu.Lock()
	s.blocks = blocks
	s.mu.Unlock()
	s.fulfilled()
	return nil
}

// Create appends the created block.
func (s *ContentSlice) Create(ctx context.Context, req *ContentCreate) error {
	s.pending()
	created, err := s.api.CreateContent(ctx, req)
	if err != nil {
		s.rejected(err)
		return err
	}
	s.mu.Lock()
	s.blocks = append(s.blocks, *created)
	s.mu.Unlock()
	s.fulfilled()
	return nil
}

// Update replaces the matching block in place.
func (s *ContentSlice) Update(ctx context.Context, id string, upd *domain.ContentUpdate) error {
	s.pending()
	block, err := s.api.UpdateContent(ctx, id, upd)
	if err != nil {
		s.rejected(err)
		return err
	}
	s.mu.Lock()
	for i := range s.blocks {
		if s.blocks[i].ID == block.ID {
			s.blocks[i] = *block
			break
		}
	}
	s.mu.Unlock()
	s.fulfilled()
	return nil
}

// Delete removes the block from the list.
func (s *ContentSlice) Delete(ctx context.Context, id string) error {
	s.pending()
	if err := s.api.DeleteContent(ctx, id); err != nil {
		s.rejected(err)
		return err
	}
	s.mu.Lock()
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.fulfilled()
	return nil
}

// ApplicationSlice mirrors the admin applications store.
type ApplicationSlice struct {
	sliceState
	api  *Client
	apps []domain.Application
}

func NewApplicationSlice(api *Client) *ApplicationSlice {
	return &ApplicationSlice{api: api}
}

func (s *ApplicationSlice) Applications() []domain.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Application, len(s.apps))
	copy(out, s.apps)
	return out
}

// Submit sends a public application; the list is not touched since the
// submitter only ever sees the summary echo.
func (s *ApplicationSlice) Submit(ctx context.Context, app *domain.Application) (*domain.ApplicationSummary, error) {
	s.pending()
	summary, err := s.api.SubmitApplication(ctx, app)
	if err != nil {
		s.rejected(err)
		return nil, err
	}
	s.fulfilled()
	return summary, nil
}

// Fetch replaces the list with all applications, newest first.
func (s *ApplicationSlice) Fetch(ctx context.Context) error {
	s.pending()
	apps, err := s.api.ListApplications(ctx)
	if err != nil {
		s.rejected(err)
		return err
	}
	s.mu.Lock()
	s.apps = apps
	s.mu.Unlock()
	s.fulfilled()
	return nil
}

// UpdateStatus replaces the matching application in place.
func (s *ApplicationSlice) UpdateStatus(ctx context.Context, id string, upd *domain.ApplicationStatusUpdate) error {
	s.pending()
	app, err := s.api.UpdateApplicationStatus(ctx, id, upd)
	if err != nil {
		s.rejected(err)
		return err
	}
	s.mu.Lock()
	for i := range s.apps {
		if s.apps[i].ID == app.ID {
			s.apps[i] = *app
			break
		}
	}
	s.mu.Unlock()
	s.fulfilled()
	return nil
}

// Delete removes the application from the list.
func (s *ApplicationSlice) Delete(ctx context.Context, id string) error {
	s.pending()
	if err := s.api.DeleteApplication(ctx, id); err != nil {
		s.rejected(err)
		return err
	}
	s.mu.Lock()
	for i := range s.apps {
		if s.apps[i].ID == id {
			s.apps = append(s.apps[:i], s.apps[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.fulfilled()
	return nil
}
