package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/internal/domain/service"
	"mercato/pkg/errors"
	"mercato/pkg/logger"
	"mercato/pkg/utils"
)

// PaymentUseCase drives the payment lifecycle: initialization with the
// gateway, buyer-side verification, webhook settlement and the escrow credit
// that follows a successful charge.
type PaymentUseCase struct {
	transactionRepo repository.TransactionRepository
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	userRepo        repository.UserRepository
	gateway         service.PaymentGatewayService
	walletUseCase   *WalletUseCase
	splitCalc       *SplitCalculator
	currency        string
}

func NewPaymentUseCase(
	transactionRepo repository.TransactionRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	gateway service.PaymentGatewayService,
	walletUseCase *WalletUseCase,
	splitCalc *SplitCalculator,
	currency string,
) *PaymentUseCase {
	return &PaymentUseCase{
		transactionRepo: transactionRepo,
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		userRepo:        userRepo,
		gateway:         gateway,
		walletUseCase:   walletUseCase,
		splitCalc:       splitCalc,
		currency:        currency,
	}
}

type InitializePaymentInput struct {
	OrderID string `json:"order_id" validate:"required"`
}

type InitializePaymentResult struct {
	AuthorizationURL string  `json:"authorization_url"`
	AccessCode       string  `json:"access_code"`
	Reference        string  `json:"reference"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
}

// InitializePayment creates a gateway checkout session for an unpaid order.
// Orders that do not exist or belong to another buyer return 404; an already
// paid order returns 409 so the client can tell the two cases apart.
func (uc *PaymentUseCase) InitializePayment(ctx context.Context, buyerID string, input InitializePaymentInput) (*InitializePaymentResult, error) {
	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, errors.NotFound("Order", err)
	}
	if order.BuyerID != buyerID {
		return nil, errors.NotFound("Order", nil)
	}

	if order.PaymentStatus == entity.PaymentStatusCompleted {
		return nil, errors.Conflict("Order is already paid", nil)
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, errors.BadRequest("Order is cancelled", nil)
	}

	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	// Re-initializing a pending payment returns the existing checkout session
	// instead of minting a second reference for the same order.
	if existing, err := uc.transactionRepo.GetByOrderID(ctx, order.ID); err == nil &&
		existing.Status == entity.TransactionStatusPending && existing.AuthorizationURL != "" {
		return &InitializePaymentResult{
			AuthorizationURL: existing.AuthorizationURL,
			AccessCode:       existing.AccessCode,
			Reference:        existing.Reference,
			Amount:           existing.Amount,
			Currency:         existing.Currency,
		}, nil
	}

	split := uc.splitCalc.Split(order.TotalAmount)
	reference := utils.GenerateReference("TXN")

	gatewayResp, err := uc.gateway.InitializePayment(ctx, service.InitializePaymentRequest{
		Email:     buyer.Email,
		Amount:    split.Total,
		Currency:  uc.currency,
		Reference: reference,
		Metadata: map[string]interface{}{
			"order_id": order.ID,
			"buyer_id": buyerID,
		},
	})
	if err != nil {
		return nil, errors.Internal("Failed to initialize payment", err)
	}

	now := time.Now()
	transaction := &entity.Transaction{
		ID:               uuid.New().String(),
		Reference:        gatewayResp.Reference,
		OrderID:          order.ID,
		BuyerID:          buyerID,
		SellerID:         order.SellerID,
		Amount:           split.Total,
		AdminFee:         split.AdminFee,
		SellerAmount:     split.SellerAmount,
		Currency:         uc.currency,
		Status:           entity.TransactionStatusPending,
		AuthorizationURL: gatewayResp.AuthorizationURL,
		AccessCode:       gatewayResp.AccessCode,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	order.PaymentReference = transaction.Reference
	order.UpdatedAt = now
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		logger.Error("Failed to store payment reference on order %s: %v", order.ID, err)
	}

	logger.Info("Payment initialized: order=%s reference=%s amount=%.2f", order.ID, transaction.Reference, split.Total)

	return &InitializePaymentResult{
		AuthorizationURL: transaction.AuthorizationURL,
		AccessCode:       transaction.AccessCode,
		Reference:        transaction.Reference,
		Amount:           transaction.Amount,
		Currency:         transaction.Currency,
	}, nil
}

// VerifyPayment is the buyer-driven path: the client calls it after returning
// from the gateway checkout page. Settlement is idempotent, so racing with the
// webhook is safe.
func (uc *PaymentUseCase) VerifyPayment(ctx context.Context, buyerID, reference string) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, errors.NotFound("Transaction", err)
	}
	if transaction.BuyerID != buyerID {
		return nil, errors.NotFound("Transaction", nil)
	}

	if transaction.Status != entity.TransactionStatusPending {
		return transaction, nil
	}

	verification, err := uc.gateway.VerifyPayment(ctx, reference)
	if err != nil {
		return nil, errors.Internal("Failed to verify payment", err)
	}

	return uc.applyVerification(ctx, transaction, verification)
}

// HandleWebhook processes a gateway event whose signature has already been
// checked by the handler. Only charge.success settles; other events are
// acknowledged and dropped.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, event, reference string) error {
	if event != "charge.success" {
		logger.Debug("Ignoring webhook event %s", event)
		return nil
	}

	transaction, err := uc.transactionRepo.GetByReference(ctx, reference)
	if err != nil {
		return errors.NotFound("Transaction", err)
	}

	if transaction.Status != entity.TransactionStatusPending {
		logger.Info("Webhook for already settled transaction %s ignored", reference)
		return nil
	}

	// The webhook payload is not trusted for amounts; the charge is re-read
	// from the gateway before settling.
	verification, err := uc.gateway.VerifyPayment(ctx, reference)
	if err != nil {
		return errors.Internal("Failed to verify payment", err)
	}

	_, err = uc.applyVerification(ctx, transaction, verification)
	return err
}

func (uc *PaymentUseCase) applyVerification(ctx context.Context, transaction *entity.Transaction, verification *service.PaymentVerification) (*entity.Transaction, error) {
	switch verification.Status {
	case service.GatewayStatusSuccess:
		return uc.settle(ctx, transaction, verification)
	case service.GatewayStatusFailed:
		return uc.markFailed(ctx, transaction, verification)
	default:
		return transaction, nil
	}
}

// settle flips a pending transaction to success, marks the order paid and
// credits the seller's escrow. The pending-status guard makes it a no-op for
// a transaction that already settled, so a verify call racing the webhook
// cannot credit the wallet twice.
func (uc *PaymentUseCase) settle(ctx context.Context, transaction *entity.Transaction, verification *service.PaymentVerification) (*entity.Transaction, error) {
	if transaction.Status != entity.TransactionStatusPending {
		return transaction, nil
	}

	now := time.Now()
	transaction.Status = entity.TransactionStatusSuccess
	transaction.Channel = verification.Channel
	transaction.GatewayResponse = verification.GatewayResponse
	transaction.PaidAt = verification.PaidAt
	if transaction.PaidAt == nil {
		transaction.PaidAt = &now
	}
	transaction.UpdatedAt = now

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.GetByID(ctx, transaction.OrderID)
	if err != nil {
		return nil, err
	}
	order.PaymentStatus = entity.PaymentStatusCompleted
	order.Status = entity.OrderStatusProcessing
	order.UpdatedAt = now
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if _, err := uc.walletUseCase.CreditEscrow(ctx, transaction.SellerID, transaction.SellerAmount, transaction.AdminFee, transaction.Reference); err != nil {
		return nil, err
	}

	uc.recordSales(ctx, order)

	logger.Info("Payment settled: reference=%s order=%s seller=%s amount=%.2f", transaction.Reference, order.ID, transaction.SellerID, transaction.Amount)
	return transaction, nil
}

func (uc *PaymentUseCase) markFailed(ctx context.Context, transaction *entity.Transaction, verification *service.PaymentVerification) (*entity.Transaction, error) {
	if transaction.Status != entity.TransactionStatusPending {
		return transaction, nil
	}

	transaction.Status = entity.TransactionStatusFailed
	transaction.Channel = verification.Channel
	transaction.GatewayResponse = verification.GatewayResponse
	transaction.UpdatedAt = time.Now()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.GetByID(ctx, transaction.OrderID)
	if err == nil {
		order.PaymentStatus = entity.PaymentStatusFailed
		order.UpdatedAt = time.Now()
		if err := uc.orderRepo.Update(ctx, order); err != nil {
			logger.Error("Failed to mark order %s payment failed: %v", order.ID, err)
		}
	}

	logger.Warn("Payment failed: reference=%s response=%s", transaction.Reference, verification.GatewayResponse)
	return transaction, nil
}

// recordSales bumps sold counters and decrements stock. Counter drift here is
// tolerable, so failures only log.
func (uc *PaymentUseCase) recordSales(ctx context.Context, order *entity.Order) {
	for _, item := range order.Items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			logger.Error("Failed to load product %s for sales counters: %v", item.ProductID, err)
			continue
		}

		product.SoldCount += item.Quantity
		product.Stock -= item.Quantity
		if product.Stock <= 0 {
			product.Stock = 0
			product.Status = entity.ProductStatusSoldOut
		}
		product.UpdatedAt = time.Now()

		if err := uc.productRepo.Update(ctx, product); err != nil {
			logger.Error("Failed to update sales counters for product %s: %v", product.ID, err)
		}
	}
}

func (uc *PaymentUseCase) GetTransaction(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, errors.NotFound("Transaction", err)
	}
	if transaction.BuyerID != userID && transaction.SellerID != userID {
		return nil, errors.NotFound("Transaction", nil)
	}
	return transaction, nil
}

func (uc *PaymentUseCase) ListTransactions(ctx context.Context, filter map[string]interface{}, pagination *utils.Pagination) ([]*entity.Transaction, int64, error) {
	return uc.transactionRepo.List(ctx, filter, pagination)
}
