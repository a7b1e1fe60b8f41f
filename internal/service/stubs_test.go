package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
)

// ── In-memory CashboxRepository ──────────────────────────────────────────────

type memCashboxRepo struct {
	box model.Cashbox
	txs []model.Transaction
}

func newMemCashboxRepo() *memCashboxRepo {
	return &memCashboxRepo{
		box: model.Cashbox{
			ID:          uuid.New(),
			CashBalance: decimal.Zero,
			CardBalance: decimal.Zero,
			BankBalance: decimal.Zero,
		},
	}
}

func (r *memCashboxRepo) balance(method string) *decimal.Decimal {
	switch method {
	case model.MethodCard:
		return &r.box.CardBalance
	case model.MethodBank:
		return &r.box.BankBalance
	default:
		return &r.box.CashBalance
	}
}

// signedSum recomputes a balance from the surviving ledger entries.
func (r *memCashboxRepo) signedSum(method string) decimal.Decimal {
	sum := decimal.Zero
	for i := range r.txs {
		if r.txs[i].PaymentMethod == method {
			sum = sum.Add(r.txs[i].SignedAmount())
		}
	}
	return sum
}

func (r *memCashboxRepo) GetOrCreate(_ context.Context) (*model.Cashbox, error) {
	box := r.box
	return &box, nil
}

func (r *memCashboxRepo) GetOrCreateTx(_ *gorm.DB) (*model.Cashbox, error) {
	box := r.box
	return &box, nil
}

func (r *memCashboxRepo) AddBalanceTx(_ *gorm.DB, _ uuid.UUID, method string, delta decimal.Decimal) error {
	p := r.balance(method)
	*p = p.Add(delta)
	return nil
}

func (r *memCashboxRepo) WithdrawTx(_ *gorm.DB, _ uuid.UUID, method string, amount decimal.Decimal) error {
	p := r.balance(method)
	if p.LessThan(amount) {
		return repository.ErrInsufficientBalance
	}
	*p = p.Sub(amount)
	return nil
}

func (r *memCashboxRepo) CreateTransactionTx(_ *gorm.DB, t *model.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.txs = append(r.txs, *t)
	return nil
}

func (r *memCashboxRepo) FindTransaction(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	for i := range r.txs {
		if r.txs[i].ID == id {
			t := r.txs[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCashboxRepo) DeleteTransactionTx(_ *gorm.DB, id uuid.UUID) (int64, error) {
	var removed int64
	kept := r.txs[:0]
	for _, t := range r.txs {
		if t.ID != id {
			kept = append(kept, t)
		} else {
			removed++
		}
	}
	r.txs = kept
	return removed, nil
}

func (r *memCashboxRepo) FindTransactionsByReferenceTx(_ *gorm.DB, referenceID uuid.UUID) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.txs {
		if t.ReferenceID != nil && *t.ReferenceID == referenceID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memCashboxRepo) DeleteTransactionsByReferenceTx(_ *gorm.DB, referenceID uuid.UUID) error {
	kept := r.txs[:0]
	for _, t := range r.txs {
		if t.ReferenceID == nil || *t.ReferenceID != referenceID {
			kept = append(kept, t)
		}
	}
	r.txs = kept
	return nil
}

func (r *memCashboxRepo) ListTransactions(_ context.Context, page, limit int) ([]model.Transaction, int64, error) {
	total := int64(len(r.txs))
	start := (page - 1) * limit
	if start >= len(r.txs) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(r.txs) {
		end = len(r.txs)
	}
	return r.txs[start:end], total, nil
}

func (r *memCashboxRepo) ListAllTransactions(_ context.Context) ([]model.Transaction, error) {
	out := make([]model.Transaction, len(r.txs))
	copy(out, r.txs)
	return out, nil
}

func (r *memCashboxRepo) DB() *gorm.DB { return nil }

var _ repository.CashboxRepository = (*memCashboxRepo)(nil)

// ── In-memory ClientRepository ───────────────────────────────────────────────

type memClientRepo struct {
	clients map[uuid.UUID]*model.Client
	debts   []model.Debt
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *memClientRepo) debtsOf(clientID uuid.UUID) []model.Debt {
	var out []model.Debt
	for _, d := range r.debts {
		if d.ClientID == clientID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *memClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	stored := *c
	r.clients[c.ID] = &stored
	return nil
}

func (r *memClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	out.Debts = r.debtsOf(id)
	return &out, nil
}

func (r *memClientRepo) FindByPhone(_ context.Context, phone string) (*model.Client, error) {
	for _, c := range r.clients {
		if c.Phone == phone {
			out := *c
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memClientRepo) FindByReferralCode(_ context.Context, code string) (*model.Client, error) {
	for _, c := range r.clients {
		if c.ReferralCode == code {
			out := *c
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memClientRepo) List(_ context.Context, page, limit int, _ string) ([]model.Client, int64, error) {
	all, _ := r.ListAll(context.Background())
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memClientRepo) ListAll(_ context.Context) ([]model.Client, error) {
	var out []model.Client
	for id, c := range r.clients {
		item := *c
		item.Debts = r.debtsOf(id)
		out = append(out, item)
	}
	return out, nil
}

func (r *memClientRepo) Update(_ context.Context, c *model.Client) error {
	stored := *c
	r.clients[c.ID] = &stored
	return nil
}

func (r *memClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	kept := r.debts[:0]
	for _, d := range r.debts {
		if d.ClientID != id {
			kept = append(kept, d)
		}
	}
	r.debts = kept
	return nil
}

func (r *memClientRepo) AddBonusTx(_ *gorm.DB, clientID uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.clients[clientID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Bonus = c.Bonus.Add(delta)
	return nil
}

func (r *memClientRepo) AddBonus(_ context.Context, clientID uuid.UUID, delta decimal.Decimal) error {
	return r.AddBonusTx(nil, clientID, delta)
}

func (r *memClientRepo) CreateDebtTx(_ *gorm.DB, d *model.Debt) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.debts = append(r.debts, *d)
	return nil
}

func (r *memClientRepo) ListDebtsTx(_ *gorm.DB, clientID uuid.UUID) ([]model.Debt, error) {
	return r.debtsOf(clientID), nil
}

func (r *memClientRepo) UpdateDebtAmountTx(_ *gorm.DB, debtID uuid.UUID, amount decimal.Decimal) error {
	for i := range r.debts {
		if r.debts[i].ID == debtID {
			r.debts[i].Amount = amount
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memClientRepo) DeleteDebtTx(_ *gorm.DB, debtID uuid.UUID) error {
	kept := r.debts[:0]
	for _, d := range r.debts {
		if d.ID != debtID {
			kept = append(kept, d)
		}
	}
	r.debts = kept
	return nil
}

func (r *memClientRepo) DB() *gorm.DB { return nil }

var _ repository.ClientRepository = (*memClientRepo)(nil)

// ── In-memory ProductRepository ──────────────────────────────────────────────

type memProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *model.Product) error {
	return r.CreateTx(nil, p)
}

func (r *memProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	return &out, nil
}

func (r *memProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			out := *p
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memProductRepo) FindByNameTx(_ *gorm.DB, name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			out := *p
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) Update(_ context.Context, p *model.Product) error {
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) (int, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	p.Available += delta
	return p.Available, nil
}

func (r *memProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*memProductRepo)(nil)

// ── In-memory PaymentRepository ──────────────────────────────────────────────

type memPaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: make(map[uuid.UUID]*model.Payment)}
}

func (r *memPaymentRepo) CreateTx(_ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PaymentID = p.ID
	}
	stored := *p
	stored.Items = append([]model.PaymentItem(nil), p.Items...)
	r.payments[p.ID] = &stored
	return nil
}

func (r *memPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	out.Items = append([]model.PaymentItem(nil), p.Items...)
	return &out, nil
}

func (r *memPaymentRepo) SaveTx(_ *gorm.DB, p *model.Payment) error {
	stored := *p
	stored.Items = append([]model.PaymentItem(nil), p.Items...)
	r.payments[p.ID] = &stored
	return nil
}

func (r *memPaymentRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

func (r *memPaymentRepo) List(_ context.Context, filter dto.PaymentFilter) ([]model.Payment, int64, error) {
	var out []model.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *memPaymentRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.payments {
		if p.ClientID != nil && *p.ClientID == clientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) DB() *gorm.DB { return nil }

var _ repository.PaymentRepository = (*memPaymentRepo)(nil)

// ── In-memory CostRepository ─────────────────────────────────────────────────

type memCostRepo struct {
	costs map[uuid.UUID]*model.Cost
}

func newMemCostRepo() *memCostRepo {
	return &memCostRepo{costs: make(map[uuid.UUID]*model.Cost)}
}

func (r *memCostRepo) CreateTx(_ *gorm.DB, c *model.Cost) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	stored := *c
	r.costs[c.ID] = &stored
	return nil
}

func (r *memCostRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cost, error) {
	c, ok := r.costs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	return &out, nil
}

func (r *memCostRepo) SaveTx(_ *gorm.DB, c *model.Cost) error {
	stored := *c
	r.costs[c.ID] = &stored
	return nil
}

func (r *memCostRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.costs, id)
	return nil
}

func (r *memCostRepo) List(_ context.Context, page, limit int, _ string) ([]model.Cost, int64, error) {
	all, _ := r.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *memCostRepo) ListAll(_ context.Context) ([]model.Cost, error) {
	var out []model.Cost
	for _, c := range r.costs {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCostRepo) SumToday(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	today := time.Now().Truncate(24 * time.Hour)
	for _, c := range r.costs {
		if !c.CreatedAt.Before(today) {
			sum = sum.Add(c.Amount)
		}
	}
	return sum, nil
}

func (r *memCostRepo) DB() *gorm.DB { return nil }

var _ repository.CostRepository = (*memCostRepo)(nil)

// ── In-memory HandoverRepository ─────────────────────────────────────────────

type memHandoverRepo struct {
	handovers map[uuid.UUID]*model.Handover
}

func newMemHandoverRepo() *memHandoverRepo {
	return &memHandoverRepo{handovers: make(map[uuid.UUID]*model.Handover)}
}

func (r *memHandoverRepo) Create(_ context.Context, h *model.Handover) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	stored := *h
	r.handovers[h.ID] = &stored
	return nil
}

func (r *memHandoverRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Handover, error) {
	h, ok := r.handovers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *h
	return &out, nil
}

func (r *memHandoverRepo) SaveTx(_ *gorm.DB, h *model.Handover) error {
	stored := *h
	r.handovers[h.ID] = &stored
	return nil
}

func (r *memHandoverRepo) TransitionStatusTx(_ *gorm.DB, id uuid.UUID, from, to string) (int64, error) {
	h, ok := r.handovers[id]
	if !ok || h.Status != from {
		return 0, nil
	}
	h.Status = to
	return 1, nil
}

func (r *memHandoverRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]model.Handover, error) {
	var out []model.Handover
	for _, h := range r.handovers {
		if h.EmployeeID == employeeID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *memHandoverRepo) ListByParticipant(_ context.Context, sellerID uuid.UUID) ([]model.Handover, error) {
	var out []model.Handover
	for _, h := range r.handovers {
		if h.EmployeeID == sellerID || h.SupervisorID == sellerID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *memHandoverRepo) DB() *gorm.DB { return nil }

var _ repository.HandoverRepository = (*memHandoverRepo)(nil)

// ── In-memory ReturnedRepository ─────────────────────────────────────────────

type memReturnedRepo struct {
	returns map[uuid.UUID]*model.Returned
}

func newMemReturnedRepo() *memReturnedRepo {
	return &memReturnedRepo{returns: make(map[uuid.UUID]*model.Returned)}
}

func (r *memReturnedRepo) CreateTx(_ *gorm.DB, ret *model.Returned) error {
	if ret.ID == uuid.Nil {
		ret.ID = uuid.New()
	}
	ret.CreatedAt = time.Now()
	stored := *ret
	r.returns[ret.ID] = &stored
	return nil
}

func (r *memReturnedRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Returned, error) {
	ret, ok := r.returns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *ret
	return &out, nil
}

func (r *memReturnedRepo) List(_ context.Context) ([]model.Returned, error) {
	var out []model.Returned
	for _, ret := range r.returns {
		out = append(out, *ret)
	}
	return out, nil
}

func (r *memReturnedRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.returns, id)
	return nil
}

func (r *memReturnedRepo) DB() *gorm.DB { return nil }

var _ repository.ReturnedRepository = (*memReturnedRepo)(nil)

// ── In-memory SellerRepository ───────────────────────────────────────────────

type memSellerRepo struct {
	sellers map[uuid.UUID]*model.Seller
}

func newMemSellerRepo() *memSellerRepo {
	return &memSellerRepo{sellers: make(map[uuid.UUID]*model.Seller)}
}

func (r *memSellerRepo) Create(_ context.Context, s *model.Seller) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	stored := *s
	r.sellers[s.ID] = &stored
	return nil
}

func (r *memSellerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Seller, error) {
	s, ok := r.sellers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *s
	return &out, nil
}

func (r *memSellerRepo) FindByLogin(_ context.Context, login string) (*model.Seller, error) {
	for _, s := range r.sellers {
		if s.Login == login {
			out := *s
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memSellerRepo) List(_ context.Context) ([]model.Seller, error) {
	var out []model.Seller
	for _, s := range r.sellers {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memSellerRepo) ListSupervisors(_ context.Context) ([]model.Seller, error) {
	var out []model.Seller
	for _, s := range r.sellers {
		if s.IsSupervisor() {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSellerRepo) Update(_ context.Context, s *model.Seller) error {
	stored := *s
	r.sellers[s.ID] = &stored
	return nil
}

func (r *memSellerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sellers, id)
	return nil
}

var _ repository.SellerRepository = (*memSellerRepo)(nil)
