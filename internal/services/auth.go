package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/campus-connect/campus-backend/pkg/logger"
	"gorm.io/gorm"
)

type AuthService struct {
	db           *gorm.DB
	jwtSecret    string
	emailService *EmailService
	baseURL      string
}

func NewAuthService(db *gorm.DB, jwtSecret string, emailService *EmailService, baseURL string) *AuthService {
	return &AuthService{
		db:           db,
		jwtSecret:    jwtSecret,
		emailService: emailService,
		baseURL:      baseURL,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
}

type AuthResponse struct {
	Tokens utils.TokenPair `json:"tokens"`
	User   models.User     `json:"user"`
}

func (s *AuthService) Register(req RegisterRequest) (*AuthResponse, error) {
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	if !utils.IsValidPassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	if req.Role == "" {
		req.Role = models.RoleBuyer
	}
	if !utils.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: invalid role", ErrValidation)
	}

	email := utils.NormalizeEmail(req.Email)

	// Check if user already exists (emails are stored lowercased)
	var existingUser models.User
	if err := s.db.Where("email = ?", email).First(&existingUser).Error; err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	user := models.User{
		Name:     utils.SanitizeString(req.Name),
		Email:    email,
		Password: req.Password, // Hashed in BeforeCreate hook
		Role:     req.Role,
		// Sellers wait for admin approval before they can log in
		IsApproved: req.Role != models.RoleSeller,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, errors.New("failed to create user")
	}

	tokenPair, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, errors.New("failed to generate tokens")
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Unix(tokenPair.RefreshTokenExpiresAt, 0),
	}

	if err := s.db.Create(&refreshToken).Error; err != nil {
		return nil, errors.New("failed to store refresh token")
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			logger.Warn("Failed to send welcome email: ", err)
		}
	}

	return &AuthResponse{Tokens: *tokenPair, User: user}, nil
}

func (s *AuthService) Login(req LoginRequest) (*AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	// Wrong email and wrong password are indistinguishable on purpose, so
	// the endpoint cannot be used to enumerate accounts.
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	}

	if !user.CheckPassword(req.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	}

	if user.IsBanned {
		return nil, fmt.Errorf("%w: account is banned", ErrForbidden)
	}

	if !user.IsApproved {
		return nil, fmt.Errorf("%w: account is pending approval", ErrForbidden)
	}

	// Revoke existing refresh tokens on every fresh login
	s.db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Update("is_revoked", true)

	tokenPair, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, errors.New("failed to generate tokens")
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Unix(tokenPair.RefreshTokenExpiresAt, 0),
	}

	if err := s.db.Create(&refreshToken).Error; err != nil {
		return nil, errors.New("failed to store refresh token")
	}

	return &AuthResponse{Tokens: *tokenPair, User: user}, nil
}

func (s *AuthService) RefreshToken(req RefreshRequest) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(req.RefreshToken, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthenticated)
	}

	if claims.Type != string(utils.RefreshToken) {
		return nil, fmt.Errorf("%w: invalid token type", ErrUnauthenticated)
	}

	var refreshToken models.RefreshToken
	if err := s.db.Where("token = ? AND is_revoked = ? AND expires_at > ?", req.RefreshToken, false, time.Now()).
		First(&refreshToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: refresh token not found or expired", ErrUnauthenticated)
		}
		return nil, err
	}

	var user models.User
	if err := s.db.Where("id = ? AND is_banned = ?", refreshToken.UserID, false).
		First(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrUnauthenticated)
	}

	var response *AuthResponse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		refreshToken.IsRevoked = true
		if err := tx.Save(&refreshToken).Error; err != nil {
			return errors.New("failed to revoke old token")
		}

		tokenPair, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
		if err != nil {
			return errors.New("failed to generate new tokens")
		}

		newRefresh := models.RefreshToken{
			UserID:    user.ID,
			Token:     tokenPair.RefreshToken,
			ExpiresAt: time.Unix(tokenPair.RefreshTokenExpiresAt, 0),
		}

		if err := tx.Create(&newRefresh).Error; err != nil {
			return errors.New("failed to store new refresh token")
		}

		response = &AuthResponse{Tokens: *tokenPair, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (s *AuthService) Logout(refreshToken string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("token = ?", refreshToken).
		Update("is_revoked", true).Error
}

func (s *AuthService) LogoutAll(userID uint) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("is_revoked", true).Error
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(userID uint, req UpdateProfileRequest) (*models.User, error) {
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	email := utils.NormalizeEmail(req.Email)
	if email != user.Email {
		var other models.User
		if err := s.db.Where("email = ? AND id <> ?", email, userID).First(&other).Error; err == nil {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
	}

	if req.Name != "" {
		user.Name = utils.SanitizeString(req.Name)
	}
	user.Email = email

	if err := s.db.Save(&user).Error; err != nil {
		return nil, errors.New("failed to update profile")
	}

	return &user, nil
}

func (s *AuthService) ForgotPassword(req ForgotPasswordRequest) error {
	if !utils.IsValidEmail(req.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	var user models.User
	if err := s.db.Where("email = ?", utils.NormalizeEmail(req.Email)).First(&user).Error; err != nil {
		return nil // Don't reveal whether the email exists
	}

	resetToken, err := utils.GenerateRandomString(32)
	if err != nil {
		return errors.New("failed to generate reset token")
	}

	s.db.Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND is_used = ?", user.ID, false).
		Update("is_used", true)

	passwordResetToken := models.PasswordResetToken{
		UserID:    user.ID,
		Token:     resetToken,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	if err := s.db.Create(&passwordResetToken).Error; err != nil {
		return errors.New("failed to create reset token")
	}

	if s.emailService != nil {
		if err := s.emailService.SendPasswordResetEmail(user.Email, resetToken, s.baseURL); err != nil {
			logger.Warn("Failed to send password reset email: ", err)
		}
	}

	return nil
}

func (s *AuthService) ResetPassword(req ResetPasswordRequest) error {
	if !utils.IsValidPassword(req.NewPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	var resetToken models.PasswordResetToken
	if err := s.db.Where("token = ? AND is_used = ? AND expires_at > ?",
		req.Token, false, time.Now()).First(&resetToken).Error; err != nil {
		return fmt.Errorf("%w: invalid or expired reset token", ErrUnauthenticated)
	}

	var user models.User
	if err := s.db.First(&user, resetToken.UserID).Error; err != nil {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if err := user.UpdatePassword(req.NewPassword); err != nil {
		return errors.New("failed to update password")
	}

	if err := s.db.Save(&user).Error; err != nil {
		return errors.New("failed to save new password")
	}

	resetToken.IsUsed = true
	s.db.Save(&resetToken)

	s.db.Model(&models.RefreshToken{}).
		Where("user_id = ?", user.ID).
		Update("is_revoked", true)

	return nil
}

func (s *AuthService) ChangePassword(userID uint, req ChangePasswordRequest) error {
	if !utils.IsValidPassword(req.NewPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return fmt.Errorf("%w: current password is incorrect", ErrUnauthenticated)
	}

	if err := user.UpdatePassword(req.NewPassword); err != nil {
		return errors.New("failed to update password")
	}

	if err := s.db.Save(&user).Error; err != nil {
		return errors.New("failed to save new password")
	}

	return nil
}
