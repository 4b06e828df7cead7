package usecase

import (
	"context"
	"errors"

	"studio-site-backend/internal/domain"
	"studio-site-backend/pkg/apperror"
	"studio-site-backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo    domain.UserRepository
	tokens      *token.Manager
	adminSecret string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo domain.UserRepository, tokens *token.Manager, adminSecret string) domain.AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		tokens:      tokens,
		adminSecret: adminSecret,
	}
}

// Register creates a regular (non-admin) account and issues a token
func (uc *authUsecase) Register(ctx context.Context, name, email, password string) (*domain.AuthPayload, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperror.BadRequest("Пожалуйста, заполните все поля")
	}
	if len(password) < 6 {
		return nil, apperror.BadRequest("Пароль должен содержать минимум 6 символов")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Пользователь уже существует")
		}
		return nil, apperror.Internal(err)
	}

	return uc.payloadWithToken(user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same message so accounts cannot be enumerated.
func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthPayload, error) {
	if email == "" || password == "" {
		return nil, apperror.BadRequest("Пожалуйста, укажите email и пароль")
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Неверный email или пароль")
		}
		return nil, apperror.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperror.Unauthorized("Неверный email или пароль")
	}

	return uc.payloadWithToken(user)
}

// GetProfile returns the authenticated user's own record
func (uc *authUsecase) GetProfile(ctx context.Context) (*domain.AuthPayload, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Пользователь не найден")
		}
		return nil, apperror.Internal(err)
	}

	return &domain.AuthPayload{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}

// UpdateProfile applies a partial self-service update and re-issues a token
func (uc *authUsecase) UpdateProfile(ctx context.Context, name, email, password string) (*domain.AuthPayload, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Пользователь не найден")
		}
		return nil, apperror.Internal(err)
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if password != "" {
		if len(password) < 6 {
			return nil, apperror.BadRequest("Пароль должен содержать минимум 6 символов")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.PasswordHash = string(hash)
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Пользователь уже существует")
		}
		return nil, apperror.Internal(err)
	}

	return uc.payloadWithToken(user)
}

// ListUsers returns all accounts. Admin gating happens at the route level.
func (uc *authUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

// CreateAdmin bootstraps the very first account with admin rights. The
// shared secret must match, and any existing user closes the window for
// good.
func (uc *authUsecase) CreateAdmin(ctx context.Context, name, email, password, secret string) (*domain.AuthPayload, error) {
	if uc.adminSecret == "" || secret != uc.adminSecret {
		return nil, apperror.Unauthorized("Неверный секретный ключ")
	}

	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if count > 0 {
		return nil, apperror.BadRequest("Администратор уже создан")
	}

	if name == "" || email == "" || password == "" {
		return nil, apperror.BadRequest("Пожалуйста, заполните все поля")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	admin := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Пользователь уже существует")
		}
		return nil, apperror.Internal(err)
	}

	return uc.payloadWithToken(admin)
}

// GetCurrentUser resolves a token subject to its user record
func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Пользователь не найден")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (uc *authUsecase) payloadWithToken(user *domain.User) (*domain.AuthPayload, error) {
	t, err := uc.tokens.Sign(user.ID, user.IsAdmin)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthPayload{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   t,
	}, nil
}

// currentUserID reads the authenticated identity the auth middleware put
// into the request context. Fails safe when the key is missing.
func currentUserID(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(domain.KeyUserID).(string)
	if userID == "" {
		return "", apperror.Unauthorized("Требуется авторизация")
	}
	return userID, nil
}
