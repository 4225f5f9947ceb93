package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/anselmoparente/VemProFut/internal/config"
	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/anselmoparente/VemProFut/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const emailTakenMessage = "O campo email já está sendo utilizado."

type AuthService struct {
	db    *gorm.DB
	cfg   *config.Config
	clock clockwork.Clock
}

func NewAuthService(db *gorm.DB, cfg *config.Config, clock clockwork.Clock) *AuthService {
	return &AuthService{db: db, cfg: cfg, clock: clock}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	roleName := req.Role
	if roleName == "" {
		roleName = models.RolePlayer
	}
	roleID, ok := models.RoleIDByName(roleName)
	if !ok {
		return nil, validation.Single("role", "O campo role selecionado é inválido.")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.WithContext(ctx).Unscoped().Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validation.Single("email", emailTakenMessage)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       &roleID,
	}

	var resp *dto.AuthResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return validation.Single("email", emailTakenMessage)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := tx.Preload("Role").First(&user, user.ID).Error; err != nil {
			return err
		}
		var err error
		resp, err = s.issueToken(tx, &user, clientName(req.ClientType))
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.WithContext(ctx).Preload("Role").
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(s.db.WithContext(ctx), &user, clientName(req.ClientType))
}

// Logout revokes the token the request was made with.
func (s *AuthService) Logout(ctx context.Context, token *models.AccessToken) error {
	if token == nil {
		return ErrUnauthenticated
	}
	return s.db.WithContext(ctx).Model(&models.AccessToken{}).
		Where("id = ?", token.ID).
		Update("revoked_at", s.clock.Now()).Error
}

// Authenticate resolves the token id (jti) and subject of a verified JWT to a
// live access token and its user, with the role loaded.
func (s *AuthService) Authenticate(ctx context.Context, tokenID, subject string) (*models.User, *models.AccessToken, error) {
	jti, err := uuid.Parse(tokenID)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}

	var token models.AccessToken
	if err := s.db.WithContext(ctx).First(&token, "id = ?", jti).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}

	now := s.clock.Now()
	if token.UserID != uint(userID) || !token.Usable(now) {
		return nil, nil, ErrUnauthenticated
	}

	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, token.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}

	if err := s.db.WithContext(ctx).Model(&token).UpdateColumn("last_used_at", now).Error; err != nil {
		slog.Warn("failed to record token use", "error", err, "user_id", user.ID)
	}
	token.LastUsedAt = &now

	return &user, &token, nil
}

func (s *AuthService) issueToken(db *gorm.DB, user *models.User, name string) (*dto.AuthResponse, error) {
	now := s.clock.Now()
	record := models.AccessToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Name:      name,
		ExpiresAt: now.Add(s.cfg.JWTAccessExpiry),
	}

	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  user.RoleName(),
		"jti":   record.ID.String(),
		"iat":   now.Unix(),
		"exp":   record.ExpiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to store access token: %w", err)
	}

	return &dto.AuthResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: record.ExpiresAt.Unix(),
		User:      UserResponse(user),
	}, nil
}

func UserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.RoleName(),
	}
}

func clientName(clientType string) string {
	if clientType == "" {
		clientType = "web"
	}
	return clientType + "-token"
}
