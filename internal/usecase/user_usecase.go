package usecase

import (
	"context"
	"log"
	"time"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

type UpdateProfileInput struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Phone    *string `json:"phone" validate:"omitempty,min=8,max=20"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	Address  *string `json:"address" validate:"omitempty,max=500"`
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateBankDetailInput struct {
	BankName      string `json:"bank_name" validate:"required,min=2,max=100"`
	AccountNumber string `json:"account_number" validate:"required,min=6,max=20"`
	AccountName   string `json:"account_name" validate:"required,min=2,max=100"`
}

// UpdateBankDetail stores the seller's payout destination. Payout requests
// are rejected until this is set.
func (uc *UserUseCase) UpdateBankDetail(ctx context.Context, userID string, input UpdateBankDetailInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if !user.IsSeller() {
		return nil, errors.Forbidden("Only sellers can set bank details", nil)
	}

	user.BankDetail = &entity.BankDetail{
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		AccountName:   input.AccountName,
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("Bank details updated for seller %s", userID)
	return user, nil
}

type UserFilter struct {
	Role   string `query:"role" validate:"omitempty,oneof=buyer seller admin"`
	Status string `query:"status" validate:"omitempty,oneof=active suspended"`
}

func (uc *UserUseCase) ListUsers(ctx context.Context, filter UserFilter, pagination *utils.Pagination) ([]*entity.User, int64, error) {
	repoFilter := map[string]interface{}{}
	if filter.Role != "" {
		repoFilter["role"] = filter.Role
	}
	if filter.Status != "" {
		repoFilter["status"] = filter.Status
	}
	return uc.userRepo.List(ctx, repoFilter, pagination)
}

type UpdateUserStatusInput struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

// UpdateUserStatus is the admin suspend/reactivate switch.
func (uc *UserUseCase) UpdateUserStatus(ctx context.Context, userID string, input UpdateUserStatusInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if user.IsAdmin() {
		return nil, errors.Forbidden("Admin accounts cannot be suspended", nil)
	}

	user.Status = input.Status
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("User %s status set to %s", userID, input.Status)
	return user, nil
}
