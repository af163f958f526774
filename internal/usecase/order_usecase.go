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

// OrderUseCase covers checkout, the fulfillment state machine and escrow
// release on delivery confirmation.
type OrderUseCase struct {
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	walletUseCase   *WalletUseCase
	autoReleaseAge  time.Duration
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
	walletUseCase *WalletUseCase,
	autoReleaseHours int64,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		walletUseCase:   walletUseCase,
		autoReleaseAge:  time.Duration(autoReleaseHours) * time.Hour,
	}
}

type CheckoutItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CheckoutInput struct {
	Items []CheckoutItemInput `json:"items" validate:"required,min=1,dive"`
}

// Checkout creates a pending order from the buyer's cart. All items must come
// from one seller so the payment split and escrow stay per-seller. Prices are
// snapshotted from the catalog at this moment.
func (uc *OrderUseCase) Checkout(ctx context.Context, buyerID string, input CheckoutInput) (*entity.Order, error) {
	var (
		sellerID string
		items    []entity.OrderItem
	)

	for _, in := range input.Items {
		product, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, errors.NotFound("Product", err)
		}

		if product.Status != entity.ProductStatusActive || product.DeletedAt != nil {
			return nil, errors.BadRequest("Product is not available: "+product.Title, nil)
		}
		if product.SellerID == buyerID {
			return nil, errors.BadRequest("You cannot buy your own product", nil)
		}
		if product.Stock < in.Quantity {
			return nil, errors.BadRequest("Insufficient stock for "+product.Title, nil)
		}

		if sellerID == "" {
			sellerID = product.SellerID
		} else if sellerID != product.SellerID {
			return nil, errors.BadRequest("All items in an order must belong to the same seller", nil)
		}

		items = append(items, entity.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Quantity:  in.Quantity,
			Price:     product.Price,
		})
	}

	now := time.Now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		BuyerID:       buyerID,
		SellerID:      sellerID,
		Items:         items,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.TotalAmount = round2(order.ItemsTotal())

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("Order created: id=%s buyer=%s seller=%s total=%.2f", order.ID, buyerID, sellerID, order.TotalAmount)
	return order, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFound("Order", err)
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, errors.NotFound("Order", nil)
	}
	return order, nil
}

func (uc *OrderUseCase) ListBuyerOrders(ctx context.Context, buyerID string, pagination *utils.Pagination) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListByBuyerID(ctx, buyerID, pagination)
}

func (uc *OrderUseCase) ListSellerOrders(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListBySellerID(ctx, sellerID, pagination)
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=processing shipped delivered"`
}

// sellerTransitions is the fulfillment path a seller may walk an order along.
var sellerTransitions = map[string]string{
	entity.OrderStatusProcessing: entity.OrderStatusShipped,
	entity.OrderStatusShipped:    entity.OrderStatusDelivered,
}

// UpdateOrderStatus advances fulfillment. Only the seller may do this, only
// along processing -> shipped -> delivered, and only after payment completed.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, sellerID, orderID string, input UpdateOrderStatusInput) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFound("Order", err)
	}
	if order.SellerID != sellerID {
		return nil, errors.NotFound("Order", nil)
	}

	if order.PaymentStatus != entity.PaymentStatusCompleted {
		return nil, errors.BadRequest("Order has not been paid", nil)
	}
	if sellerTransitions[order.Status] != input.Status {
		return nil, errors.BadRequest("Invalid status transition from "+order.Status+" to "+input.Status, nil)
	}

	now := time.Now()
	order.Status = input.Status
	if input.Status == entity.OrderStatusDelivered {
		order.DeliveredAt = &now
	}
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("Order %s status updated to %s by seller %s", order.ID, order.Status, sellerID)
	return order, nil
}

// CancelOrder lets the buyer abandon an order that was never paid.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFound("Order", err)
	}
	if order.BuyerID != buyerID {
		return nil, errors.NotFound("Order", nil)
	}

	if order.Status != entity.OrderStatusPending || order.PaymentStatus == entity.PaymentStatusCompleted {
		return nil, errors.BadRequest("Only unpaid pending orders can be cancelled", nil)
	}

	now := time.Now()
	order.Status = entity.OrderStatusCancelled
	order.CancelledAt = &now
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("Order %s cancelled by buyer %s", order.ID, buyerID)
	return order, nil
}

// ConfirmDelivery is the buyer's acknowledgement that the goods arrived. It
// releases the escrowed seller amount into the withdrawable balance.
func (uc *OrderUseCase) ConfirmDelivery(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFound("Order", err)
	}
	if order.BuyerID != buyerID {
		return nil, errors.NotFound("Order", nil)
	}

	return uc.releaseOrderFunds(ctx, order)
}

func (uc *OrderUseCase) releaseOrderFunds(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if order.Status != entity.OrderStatusDelivered {
		return nil, errors.BadRequest("Order has not been delivered", nil)
	}
	if order.FundsReleased {
		return nil, errors.BadRequest("Funds have already been released for this order", nil)
	}

	transaction, err := uc.transactionRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, errors.NotFound("Transaction", err)
	}
	if transaction.Status != entity.TransactionStatusSuccess {
		return nil, errors.BadRequest("Order payment has not been settled", nil)
	}

	if _, err := uc.walletUseCase.ReleaseEscrow(ctx, order.SellerID, transaction.SellerAmount, transaction.Reference); err != nil {
		return nil, err
	}

	now := time.Now()
	order.FundsReleased = true
	order.FundsReleasedAt = &now
	order.UpdatedAt = now

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("Escrow released: order=%s seller=%s amount=%.2f", order.ID, order.SellerID, transaction.SellerAmount)
	return order, nil
}

// ProcessAutoRelease releases escrow for delivered orders the buyer never
// confirmed within the configured window.
func (uc *OrderUseCase) ProcessAutoRelease(ctx context.Context) {
	cutoff := time.Now().Add(-uc.autoReleaseAge)

	orders, err := uc.orderRepo.ListDeliveredUnreleased(ctx, cutoff, 50)
	if err != nil {
		log.Printf("Auto-release scan failed: %v", err)
		return
	}

	for _, order := range orders {
		if _, err := uc.releaseOrderFunds(ctx, order); err != nil {
			log.Printf("Auto-release failed for order %s: %v", order.ID, err)
			continue
		}
		log.Printf("Auto-released escrow for order %s after confirmation window", order.ID)
	}
}

// StartAutoReleaseJob runs the auto-release sweep on a fixed interval until
// the context is cancelled.
func (uc *OrderUseCase) StartAutoReleaseJob(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		log.Printf("Auto-release job started (window %s)", uc.autoReleaseAge)

		for {
			select {
			case <-ticker.C:
				uc.ProcessAutoRelease(ctx)
			case <-ctx.Done():
				log.Printf("Auto-release job stopped")
				return
			}
		}
	}()
}
