package usecase

import (
	"context"
	"log"
	"time"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/pkg/errors"
)

type AuthUseCase struct {
	authClient FirebaseAuthClient
	userRepo   repository.UserRepository
}

func NewAuthUseCase(authClient FirebaseAuthClient, userRepo repository.UserRepository) *AuthUseCase {
	return &AuthUseCase{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Phone    string `json:"phone" validate:"required,min=8,max=20"`
	Role     string `json:"role" validate:"required,oneof=buyer seller"`
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates the identity in Firebase Auth and mirrors the profile into
// Firestore. Admin accounts are provisioned out of band, never through this
// endpoint.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, errors.Conflict("Email is already registered", nil)
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to create user", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		Phone:     input.Phone,
		Role:      input.Role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to sign in", err)
	}

	log.Printf("User registered: id=%s email=%s role=%s", uid, input.Email, input.Role)
	return &AuthResult{User: user, Token: token}, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}
	if user.Status != "active" {
		return nil, errors.Forbidden("Account is suspended", nil)
	}

	token, err := uc.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	log.Printf("User logged in: id=%s", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, input ChangePasswordInput) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User", err)
	}

	if _, err := uc.authClient.SignInWithEmailPassword(user.Email, input.CurrentPassword); err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	if err := uc.authClient.UpdateUserPassword(ctx, userID, input.NewPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	log.Printf("Password changed for user %s", userID)
	return nil
}
