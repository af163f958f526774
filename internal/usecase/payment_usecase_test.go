package usecase

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercato/internal/domain/entity"
	apperrors "mercato/pkg/errors"
)

type paymentTestEnv struct {
	users        *memUserRepo
	products     *memProductRepo
	orders       *memOrderRepo
	transactions *memTransactionRepo
	wallets      *memWalletRepo
	entries      *memWalletEntryRepo
	gateway      *fakeGateway
	wallet       *WalletUseCase
	payment      *PaymentUseCase
	order        *OrderUseCase
}

func newPaymentTestEnv(t *testing.T) *paymentTestEnv {
	t.Helper()

	env := &paymentTestEnv{
		users:        newMemUserRepo(),
		products:     newMemProductRepo(),
		orders:       newMemOrderRepo(),
		transactions: newMemTransactionRepo(),
		wallets:      newMemWalletRepo(),
		entries:      newMemWalletEntryRepo(),
		gateway:      newFakeGateway(),
	}

	splitCalc, err := NewSplitCalculator(0.05)
	require.NoError(t, err)

	env.wallet = NewWalletUseCase(env.wallets, env.entries, "NGN")
	env.payment = NewPaymentUseCase(env.transactions, env.orders, env.products, env.users, env.gateway, env.wallet, splitCalc, "NGN")
	env.order = NewOrderUseCase(env.orders, env.products, env.transactions, env.wallet, 48)

	ctx := context.Background()
	require.NoError(t, env.users.Create(ctx, &entity.User{ID: "buyer-1", Email: "buyer@example.com", Role: entity.RoleBuyer, Status: "active"}))
	require.NoError(t, env.users.Create(ctx, &entity.User{ID: "seller-1", Email: "seller@example.com", Role: entity.RoleSeller, Status: "active"}))
	require.NoError(t, env.products.Create(ctx, &entity.Product{
		ID: "prod-1", SellerID: "seller-1", Title: "Widget",
		Price: 100, Stock: 5, Status: entity.ProductStatusActive,
	}))

	return env
}

func (env *paymentTestEnv) createPaidableOrder(t *testing.T) *entity.Order {
	t.Helper()
	order := &entity.Order{
		ID:            "order-1",
		BuyerID:       "buyer-1",
		SellerID:      "seller-1",
		Items:         []entity.OrderItem{{ProductID: "prod-1", Title: "Widget", Quantity: 2, Price: 100}},
		TotalAmount:   200,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, env.orders.Create(context.Background(), order))
	return order
}

func assertAppErrorStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, stderrors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.Status)
}

func TestInitializePaymentUnknownOrderReturnsNotFound(t *testing.T) {
	env := newPaymentTestEnv(t)

	_, err := env.payment.InitializePayment(context.Background(), "buyer-1", InitializePaymentInput{OrderID: "missing"})
	assertAppErrorStatus(t, err, http.StatusNotFound)
}

func TestInitializePaymentForeignOrderReturnsNotFound(t *testing.T) {
	env := newPaymentTestEnv(t)
	env.createPaidableOrder(t)

	_, err := env.payment.InitializePayment(context.Background(), "someone-else", InitializePaymentInput{OrderID: "order-1"})
	assertAppErrorStatus(t, err, http.StatusNotFound)
}

func TestInitializePaymentPaidOrderReturnsConflict(t *testing.T) {
	env := newPaymentTestEnv(t)
	order := env.createPaidableOrder(t)

	order.PaymentStatus = entity.PaymentStatusCompleted
	require.NoError(t, env.orders.Update(context.Background(), order))

	_, err := env.payment.InitializePayment(context.Background(), "buyer-1", InitializePaymentInput{OrderID: "order-1"})
	assertAppErrorStatus(t, err, http.StatusConflict)
}

func TestInitializePaymentCreatesTransactionWithSplit(t *testing.T) {
	env := newPaymentTestEnv(t)
	env.createPaidableOrder(t)

	result, err := env.payment.InitializePayment(context.Background(), "buyer-1", InitializePaymentInput{OrderID: "order-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AuthorizationURL)
	assert.NotEmpty(t, result.Reference)
	assert.Equal(t, 200.0, result.Amount)

	transaction, err := env.transactions.GetByReference(context.Background(), result.Reference)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusPending, transaction.Status)
	assert.Equal(t, 10.0, transaction.AdminFee)
	assert.Equal(t, 190.0, transaction.SellerAmount)
	assert.Equal(t, transaction.Amount, transaction.AdminFee+transaction.SellerAmount)
}

func TestInitializePaymentReusesPendingSession(t *testing.T) {
	env := newPaymentTestEnv(t)
	env.createPaidableOrder(t)

	first, err := env.payment.InitializePayment(context.Background(), "buyer-1", InitializePaymentInput{OrderID: "order-1"})
	require.NoError(t, err)

	second, err := env.payment.InitializePayment(context.Background(), "buyer-1", InitializePaymentInput{OrderID: "order-1"})
	require.NoError(t, err)
	assert.Equal(t, first.Reference, second.Reference)
	assert.Equal(t, first.AuthorizationURL, second.AuthorizationURL)
}

func TestVerifyPaymentSettlesOnce(t *testing.T) {
	env := newPaymentTestEnv(t)
	env.createPaidableOrder(t)
	ctx := context.Background()

	result, err := env.payment.InitializePayment(ctx, "buyer-1", InitializePaymentInput{OrderID: "order-1"})
	require.NoError(t, err)
	env.gateway.scriptSuccess(result.Reference, 200)

	transaction, err := env.payment.VerifyPayment(ctx, "buyer-1", result.Reference)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusSuccess, transaction.Status)

	order, err := env.orders.GetByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCompleted, order.PaymentStatus)
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)

	wallet, err := env.wallets.GetBySellerID(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 190.0, wallet.PendingBalance)
	assert.Equal(t, 10.0, wallet.TotalAdminFees)

	// A second verify, and a webhook for the same charge, must not credit again.
	_, err = env.payment.VerifyPayment(ctx, "buyer-1", result.Reference)
	require.NoError(t, err)
	require.NoError(t, env.payment.HandleWebhook(ctx, "charge.success", result.Reference))

	wallet, err = env.wallets.GetBySellerID(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 190.0, wallet.PendingBalance)
}

func TestWebhookSettlesPendingTransaction(t *testing.T) {
	env := newPaymentTestEnv(t)
	env.createPaidableOrder(t)
	ctx := context.Background()

	result, err := env.payment.InitializePayment(ctx, "buyer-1", InitializePaymentInput{OrderID: "order-1"})
	require.NoError(t, err)
	env.gateway.scriptSuccess(result.Reference, 200)

	require.NoError(t, env.payment.HandleWebhook(ctx, "charge.success", result.Reference))

	transaction, err := env.transactions.GetByReference(ctx, result.Reference)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusSuccess, transaction.Status)

	wallet, err := env.wallets.GetBySellerID(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 190.0, wallet.PendingBalance)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	env := newPaymentTestEnv(t)
	env.createPaidableOrder(t)
	ctx := context.Background()

	result, err := env.payment.InitializePayment(ctx, "buyer-1", InitializePaymentInput{OrderID: "order-1"})
	require.NoError(t, err)

	require.NoError(t, env.payment.HandleWebhook(ctx, "charge.dispute.create", result.Reference))

	transaction, err := env.transactions.GetByReference(ctx, result.Reference)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusPending, transaction.Status)
}

func TestVerifyPaymentMarksFailure(t *testing.T) {
	env := newPaymentTestEnv(t)
	env.createPaidableOrder(t)
	ctx := context.Background()

	result, err := env.payment.InitializePayment(ctx, "buyer-1", InitializePaymentInput{OrderID: "order-1"})
	require.NoError(t, err)
	env.gateway.scriptFailure(result.Reference)

	transaction, err := env.payment.VerifyPayment(ctx, "buyer-1", result.Reference)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusFailed, transaction.Status)

	order, err := env.orders.GetByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, order.PaymentStatus)

	// No escrow credit on failure.
	_, err = env.wallets.GetBySellerID(ctx, "seller-1")
	assertAppErrorStatus(t, err, http.StatusNotFound)
}

func TestSettleUpdatesProductCounters(t *testing.T) {
	env := newPaymentTestEnv(t)
	env.createPaidableOrder(t)
	ctx := context.Background()

	result, err := env.payment.InitializePayment(ctx, "buyer-1", InitializePaymentInput{OrderID: "order-1"})
	require.NoError(t, err)
	env.gateway.scriptSuccess(result.Reference, 200)

	_, err = env.payment.VerifyPayment(ctx, "buyer-1", result.Reference)
	require.NoError(t, err)

	product, err := env.products.GetByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 2, product.SoldCount)
	assert.Equal(t, 3, product.Stock)
}
