package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

// PayoutUseCase handles seller withdrawal requests. The requested amount is
// debited from the wallet at request time, so a second request cannot promise
// the same funds, and rejected or cancelled payouts refund the reservation.
type PayoutUseCase struct {
	payoutRepo    repository.PayoutRepository
	userRepo      repository.UserRepository
	walletUseCase *WalletUseCase
}

func NewPayoutUseCase(
	payoutRepo repository.PayoutRepository,
	userRepo repository.UserRepository,
	walletUseCase *WalletUseCase,
) *PayoutUseCase {
	return &PayoutUseCase{
		payoutRepo:    payoutRepo,
		userRepo:      userRepo,
		walletUseCase: walletUseCase,
	}
}

type RequestPayoutInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (uc *PayoutUseCase) RequestPayout(ctx context.Context, sellerID string, input RequestPayoutInput) (*entity.Payout, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if !seller.HasBankDetail() {
		return nil, errors.BadRequest("Bank details must be set before requesting a payout", nil)
	}

	wallet, err := uc.walletUseCase.GetOrCreateWallet(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	reference := utils.GenerateReference("PYT")

	// Reserve first. If the balance is short this fails with 400 and no
	// payout document is ever written.
	if _, err := uc.walletUseCase.ReservePayout(ctx, sellerID, input.Amount, reference); err != nil {
		return nil, err
	}

	now := time.Now()
	payout := &entity.Payout{
		ID:        uuid.New().String(),
		SellerID:  sellerID,
		WalletID:  wallet.ID,
		Amount:    input.Amount,
		Reference: reference,
		Status:    entity.PayoutStatusPending,
		Bank:      *seller.BankDetail,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.payoutRepo.Create(ctx, payout); err != nil {
		// Roll the reservation back so the seller is not left short.
		if _, refundErr := uc.walletUseCase.RefundPayout(ctx, sellerID, input.Amount, reference); refundErr != nil {
			log.Printf("CRITICAL: failed to refund reservation %s after payout create error: %v", reference, refundErr)
		}
		return nil, err
	}

	log.Printf("Payout requested: id=%s seller=%s amount=%.2f reference=%s", payout.ID, sellerID, input.Amount, reference)
	return payout, nil
}

// CancelPayout lets a seller withdraw a request the admin has not picked up
// yet. The reserved amount goes back to the wallet.
func (uc *PayoutUseCase) CancelPayout(ctx context.Context, sellerID, payoutID string) (*entity.Payout, error) {
	payout, err := uc.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, errors.NotFound("Payout", err)
	}
	if payout.SellerID != sellerID {
		return nil, errors.NotFound("Payout", nil)
	}
	if payout.Status != entity.PayoutStatusPending {
		return nil, errors.BadRequest("Only pending payouts can be cancelled", nil)
	}

	payout.Status = entity.PayoutStatusCancelled
	payout.UpdatedAt = time.Now()
	if err := uc.payoutRepo.Update(ctx, payout); err != nil {
		return nil, err
	}

	if _, err := uc.walletUseCase.RefundPayout(ctx, sellerID, payout.Amount, payout.Reference); err != nil {
		log.Printf("CRITICAL: failed to refund cancelled payout %s: %v", payout.Reference, err)
	}

	log.Printf("Payout %s cancelled by seller %s", payout.ID, sellerID)
	return payout, nil
}

type ProcessPayoutInput struct {
	Action     string `json:"action" validate:"required,oneof=approve reject"`
	AdminNotes string `json:"admin_notes"`
}

// ProcessPayout is the admin decision. Approval completes the payout (the
// funds were already debited at request time); rejection refunds the wallet.
func (uc *PayoutUseCase) ProcessPayout(ctx context.Context, adminID, payoutID string, input ProcessPayoutInput) (*entity.Payout, error) {
	payout, err := uc.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, errors.NotFound("Payout", err)
	}
	if payout.Status != entity.PayoutStatusPending {
		return nil, errors.BadRequest("Payout has already been processed", nil)
	}

	now := time.Now()
	payout.AdminNotes = input.AdminNotes
	payout.ProcessedBy = adminID
	payout.ProcessedAt = &now
	payout.UpdatedAt = now

	switch input.Action {
	case "approve":
		payout.Status = entity.PayoutStatusCompleted
	case "reject":
		payout.Status = entity.PayoutStatusFailed
	}

	if err := uc.payoutRepo.Update(ctx, payout); err != nil {
		return nil, err
	}

	if payout.Status == entity.PayoutStatusFailed {
		if _, err := uc.walletUseCase.RefundPayout(ctx, payout.SellerID, payout.Amount, payout.Reference); err != nil {
			log.Printf("CRITICAL: failed to refund rejected payout %s: %v", payout.Reference, err)
		}
	}

	log.Printf("Payout %s processed by admin %s: %s", payout.ID, adminID, payout.Status)
	return payout, nil
}

func (uc *PayoutUseCase) GetPayout(ctx context.Context, sellerID, payoutID string) (*entity.Payout, error) {
	payout, err := uc.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, errors.NotFound("Payout", err)
	}
	if payout.SellerID != sellerID {
		return nil, errors.NotFound("Payout", nil)
	}
	return payout, nil
}

func (uc *PayoutUseCase) ListSellerPayouts(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]entity.Payout, int64, error) {
	return uc.payoutRepo.ListBySellerID(ctx, sellerID, pagination)
}

func (uc *PayoutUseCase) ListPayoutsByStatus(ctx context.Context, status string, pagination *utils.Pagination) ([]entity.Payout, int64, error) {
	if status == "" {
		status = entity.PayoutStatusPending
	}
	return uc.payoutRepo.ListByStatus(ctx, status, pagination)
}
