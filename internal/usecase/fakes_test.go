package usecase

import (
	"context"
	"sync"
	"time"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/service"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

// In-memory repository fakes for exercising usecases without Firestore.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *memUserRepo) List(ctx context.Context, filter map[string]interface{}, pagination *utils.Pagination) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*entity.User
	for _, user := range r.users {
		cp := *user
		users = append(users, &cp)
	}
	return users, int64(len(users)), nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	cp := *product
	return &cp, nil
}

func (r *memProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.Create(ctx, product)
}

func (r *memProductRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	now := time.Now()
	product.DeletedAt = &now
	product.Status = entity.ProductStatusInactive
	return nil
}

func (r *memProductRepo) List(ctx context.Context, filter map[string]interface{}, pagination *utils.Pagination) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []*entity.Product
	for _, product := range r.products {
		cp := *product
		products = append(products, &cp)
	}
	return products, int64(len(products)), nil
}

func (r *memProductRepo) ListBySellerID(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []*entity.Product
	for _, product := range r.products {
		if product.SellerID == sellerID {
			cp := *product
			products = append(products, &cp)
		}
	}
	return products, int64(len(products)), nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]*entity.Order{}}
}

func (r *memOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	cp := *order
	return &cp, nil
}

func (r *memOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	return r.Create(ctx, order)
}

func (r *memOrderRepo) ListByBuyerID(ctx context.Context, buyerID string, pagination *utils.Pagination) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []*entity.Order
	for _, order := range r.orders {
		if order.BuyerID == buyerID {
			cp := *order
			orders = append(orders, &cp)
		}
	}
	return orders, int64(len(orders)), nil
}

func (r *memOrderRepo) ListBySellerID(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []*entity.Order
	for _, order := range r.orders {
		if order.SellerID == sellerID {
			cp := *order
			orders = append(orders, &cp)
		}
	}
	return orders, int64(len(orders)), nil
}

func (r *memOrderRepo) ListDeliveredUnreleased(ctx context.Context, deliveredBefore time.Time, limit int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []*entity.Order
	for _, order := range r.orders {
		if order.Status != entity.OrderStatusDelivered || order.FundsReleased {
			continue
		}
		if order.DeliveredAt == nil || order.DeliveredAt.After(deliveredBefore) {
			continue
		}
		cp := *order
		orders = append(orders, &cp)
		if len(orders) >= limit {
			break
		}
	}
	return orders, nil
}

type memTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*entity.Transaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{transactions: map[string]*entity.Transaction{}}
}

func (r *memTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *transaction
	r.transactions[transaction.ID] = &cp
	return nil
}

func (r *memTransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, errors.NotFound("Transaction", nil)
	}
	cp := *transaction
	return &cp, nil
}

func (r *memTransactionRepo) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, transaction := range r.transactions {
		if transaction.Reference == reference {
			cp := *transaction
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Transaction", nil)
}

func (r *memTransactionRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.Transaction
	for _, transaction := range r.transactions {
		if transaction.OrderID != orderID {
			continue
		}
		if latest == nil || transaction.CreatedAt.After(latest.CreatedAt) {
			latest = transaction
		}
	}
	if latest == nil {
		return nil, errors.NotFound("Transaction", nil)
	}
	cp := *latest
	return &cp, nil
}

func (r *memTransactionRepo) Update(ctx context.Context, transaction *entity.Transaction) error {
	return r.Create(ctx, transaction)
}

func (r *memTransactionRepo) List(ctx context.Context, filter map[string]interface{}, pagination *utils.Pagination) ([]*entity.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var transactions []*entity.Transaction
	for _, transaction := range r.transactions {
		cp := *transaction
		transactions = append(transactions, &cp)
	}
	return transactions, int64(len(transactions)), nil
}

type memWalletRepo struct {
	mu      sync.Mutex
	wallets map[string]*entity.Wallet
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{wallets: map[string]*entity.Wallet{}}
}

func (r *memWalletRepo) Create(ctx context.Context, wallet *entity.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *wallet
	r.wallets[wallet.ID] = &cp
	return nil
}

func (r *memWalletRepo) GetByID(ctx context.Context, walletID string) (*entity.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet, ok := r.wallets[walletID]
	if !ok {
		return nil, errors.NotFound("Wallet", nil)
	}
	cp := *wallet
	return &cp, nil
}

func (r *memWalletRepo) GetBySellerID(ctx context.Context, sellerID string) (*entity.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, wallet := range r.wallets {
		if wallet.SellerID == sellerID {
			cp := *wallet
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Wallet", nil)
}

func (r *memWalletRepo) Mutate(ctx context.Context, walletID string, fn func(*entity.Wallet) error) (*entity.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet, ok := r.wallets[walletID]
	if !ok {
		return nil, errors.NotFound("Wallet", nil)
	}

	working := *wallet
	if err := fn(&working); err != nil {
		return nil, err
	}

	r.wallets[walletID] = &working
	cp := working
	return &cp, nil
}

func (r *memWalletRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.wallets), nil
}

func (r *memWalletRepo) Totals(ctx context.Context) (balance, pending, adminFees float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, wallet := range r.wallets {
		balance += wallet.Balance
		pending += wallet.PendingBalance
		adminFees += wallet.TotalAdminFees
	}
	return balance, pending, adminFees, nil
}

type memWalletEntryRepo struct {
	mu      sync.Mutex
	entries []entity.WalletEntry
}

func newMemWalletEntryRepo() *memWalletEntryRepo {
	return &memWalletEntryRepo{}
}

func (r *memWalletEntryRepo) Create(ctx context.Context, entry *entity.WalletEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memWalletEntryRepo) ListByWalletID(ctx context.Context, walletID string, pagination *utils.Pagination) ([]entity.WalletEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []entity.WalletEntry
	for _, entry := range r.entries {
		if entry.WalletID == walletID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type memPayoutRepo struct {
	mu        sync.Mutex
	payouts   map[string]*entity.Payout
	createErr error
}

func newMemPayoutRepo() *memPayoutRepo {
	return &memPayoutRepo{payouts: map[string]*entity.Payout{}}
}

func (r *memPayoutRepo) Create(ctx context.Context, payout *entity.Payout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *payout
	r.payouts[payout.ID] = &cp
	return nil
}

func (r *memPayoutRepo) GetByID(ctx context.Context, id string) (*entity.Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payout, ok := r.payouts[id]
	if !ok {
		return nil, errors.NotFound("Payout", nil)
	}
	cp := *payout
	return &cp, nil
}

func (r *memPayoutRepo) GetByReference(ctx context.Context, reference string) (*entity.Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, payout := range r.payouts {
		if payout.Reference == reference {
			cp := *payout
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Payout", nil)
}

func (r *memPayoutRepo) Update(ctx context.Context, payout *entity.Payout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *payout
	r.payouts[payout.ID] = &cp
	return nil
}

func (r *memPayoutRepo) ListBySellerID(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]entity.Payout, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var payouts []entity.Payout
	for _, payout := range r.payouts {
		if payout.SellerID == sellerID {
			payouts = append(payouts, *payout)
		}
	}
	return payouts, int64(len(payouts)), nil
}

func (r *memPayoutRepo) ListByStatus(ctx context.Context, status string, pagination *utils.Pagination) ([]entity.Payout, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var payouts []entity.Payout
	for _, payout := range r.payouts {
		if payout.Status == status {
			payouts = append(payouts, *payout)
		}
	}
	return payouts, int64(len(payouts)), nil
}

// fakeGateway scripts gateway responses per reference.
type fakeGateway struct {
	mu            sync.Mutex
	initResponse  *service.InitializePaymentResponse
	initErr       error
	verifications map[string]*service.PaymentVerification
	verifyCalls   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{verifications: map[string]*service.PaymentVerification{}}
}

func (g *fakeGateway) InitializePayment(ctx context.Context, req service.InitializePaymentRequest) (*service.InitializePaymentResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.initErr != nil {
		return nil, g.initErr
	}
	if g.initResponse != nil {
		return g.initResponse, nil
	}
	return &service.InitializePaymentResponse{
		AuthorizationURL: "https://checkout.example.com/" + req.Reference,
		AccessCode:       "AC_" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (g *fakeGateway) VerifyPayment(ctx context.Context, reference string) (*service.PaymentVerification, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyCalls++
	verification, ok := g.verifications[reference]
	if !ok {
		return &service.PaymentVerification{Reference: reference, Status: service.GatewayStatusPending}, nil
	}
	return verification, nil
}

func (g *fakeGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return signature == "valid"
}

func (g *fakeGateway) scriptSuccess(reference string, amount float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now()
	g.verifications[reference] = &service.PaymentVerification{
		Reference:       reference,
		Status:          service.GatewayStatusSuccess,
		Amount:          amount,
		Currency:        "NGN",
		Channel:         "card",
		GatewayResponse: "Successful",
		PaidAt:          &now,
	}
}

func (g *fakeGateway) scriptFailure(reference string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifications[reference] = &service.PaymentVerification{
		Reference:       reference,
		Status:          service.GatewayStatusFailed,
		GatewayResponse: "Declined",
	}
}
