package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/application/ports"
	"github.com/jhoicas/palletpro-api/internal/application/session"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/access"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
	"github.com/jhoicas/palletpro-api/pkg/jwt"
)

const minPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y perfil.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	sessions     *session.Service
	notifier     ports.Notifier
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	sessions *session.Service,
	notifier ports.Notifier,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		sessions:     sessions,
		notifier:     notifier,
		jwtCfg:       jwtCfg,
	}
}

// Signup crea un usuario con bcrypt, su cuenta de cliente si el rol es customer,
// e inicia sesión. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if !validEmail(email) || len(in.Password) < minPasswordLen || name == "" {
		return nil, domain.ErrInvalidInput
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if role == entity.RoleCustomer {
		company := strings.TrimSpace(in.Company)
		if company == "" {
			company = name
		}
		customer := &entity.Customer{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			Company:     company,
			ContactName: name,
			Email:       email,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.customerRepo.Create(ctx, customer); err != nil {
			return nil, err
		}
	}
	resp, err := uc.startSession(ctx, user)
	if err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, user.ID, ports.Toast{
		Title:       "Account created",
		Description: "Welcome to PalletPro, " + user.Name + "!",
		Variant:     entity.NotificationSuccess,
	})
	return resp, nil
}

// Login verifica email/password, inicia la sesión y genera el JWT.
// Usuario inexistente o password incorrecto → ErrUnauthorized; usuario inactivo → ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.notifier.Notify(ctx, user.ID, ports.Toast{
			Title:       "Login failed",
			Description: "Invalid credentials",
			Variant:     entity.NotificationDestructive,
		})
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	resp, err := uc.startSession(ctx, user)
	if err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, user.ID, ports.Toast{
		Title:       "Login successful",
		Description: "Welcome back, " + user.Name + "!",
		Variant:     entity.NotificationSuccess,
	})
	return resp, nil
}

// Logout cierra la sesión. Cerrar una sesión ya vencida no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	sess, err := uc.sessions.Resolve(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := uc.sessions.End(ctx, sessionID); err != nil {
		return err
	}
	if sess != nil {
		uc.notifier.Notify(ctx, sess.User.ID, ports.Toast{
			Title:       "Logged out",
			Description: "You have been logged out successfully",
		})
	}
	return nil
}

// Me devuelve el usuario de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, sessionID string) (*dto.UserResponse, error) {
	user, err := uc.sessionUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateProfile actualiza nombre, email y avatar. El rol no es editable:
// un cambio de rol devuelve ErrInvalidInput y no modifica nada.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, sessionID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.sessionUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if in.Role != nil && entity.Role(*in.Role) != user.Role {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validEmail(email) {
			return nil, domain.ErrInvalidInput
		}
		if email != user.Email {
			other, err := uc.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Avatar != nil {
		user.Avatar = strings.TrimSpace(*in.Avatar)
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if _, err := uc.sessions.Refresh(ctx, sessionID, user); err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, user.ID, ports.Toast{
		Title:       "Profile updated",
		Description: "Your profile has been updated successfully",
		Variant:     entity.NotificationSuccess,
	})
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) sessionUser(ctx context.Context, sessionID string) (*entity.User, error) {
	sess, err := uc.sessions.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrSessionExpired
	}
	user, err := uc.userRepo.GetByID(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *AuthUseCase) startSession(ctx context.Context, user *entity.User) (*dto.LoginResponse, error) {
	sess, err := uc.sessions.Start(ctx, user)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, sess.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		_ = uc.sessions.End(ctx, sess.ID)
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		SessionID: sess.ID,
		ExpiresAt: sess.ExpiresAt,
		Home:      access.HomeFor(user.Role),
		User:      *toUserResponse(user),
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
