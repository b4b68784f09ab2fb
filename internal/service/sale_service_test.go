package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"saborpos/internal/checkout"
	"saborpos/internal/dto"
	"saborpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ── In-memory SaleRepository ─────────────────────────────────────────────────

type memSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	nextTicket int
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *memSaleRepo) DB() *gorm.DB { return nil }

func (r *memSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	r.sales[s.ID] = s
	return nil
}

func (r *memSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *memSaleRepo) MarkCancelledTx(_ *gorm.DB, id uuid.UUID, reason string) error {
	s, ok := r.sales[id]
	if !ok {
		return errors.New("not found")
	}
	now := time.Now()
	s.IsCancelled = true
	s.CancelledAt = &now
	s.CancelReason = &reason
	return nil
}

func (r *memSaleRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.nextTicket++
	return r.nextTicket, nil
}

func (r *memSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var result []model.Sale
	for _, s := range r.sales {
		switch filter.Status {
		case "cancelled":
			if !s.IsCancelled {
				continue
			}
		case "all":
		default:
			if s.IsCancelled {
				continue
			}
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

// ── In-memory ProductRepository ──────────────────────────────────────────────

type memProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newMemProductRepo(products ...*model.Product) *memProductRepo {
	r := &memProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *memProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type saleFixture struct {
	svc      SaleService
	cashSvc  CashService
	saleRepo *memSaleRepo
	cashRepo *memCashRepo
	burger   *model.Product
	salad    *model.Product
	session  uuid.UUID
	operator uuid.UUID
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	burger := &model.Product{
		ID: uuid.New(), Code: "BRG-01", Name: "Burger", UnitPrice: decPtr("25.90"), Active: true,
	}
	salad := &model.Product{
		ID: uuid.New(), Code: "SLD-01", Name: "Salad Bar", PricePerGram: decPtr("0.0359"), Active: true,
	}

	cashRepo := newMemCashRepo()
	cashSvc := NewCashService(cashRepo)
	sessionID, operatorID := openSession(t, cashSvc, "100.00")

	saleRepo := newMemSaleRepo()
	svc := NewSaleService(saleRepo, newMemProductRepo(burger, salad), cashSvc, cashRepo, nil)

	return &saleFixture{
		svc:      svc,
		cashSvc:  cashSvc,
		saleRepo: saleRepo,
		cashRepo: cashRepo,
		burger:   burger,
		salad:    salad,
		session:  sessionID,
		operator: operatorID,
	}
}

// ── RegisterSale ─────────────────────────────────────────────────────────────

func TestRegisterSaleCashWithChange(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.burger.ID.String(), Quantity: 2},
		},
		Discount: &dto.DiscountRequest{Type: "percentage", Value: dec("10")},
		Payment:  dto.PaymentRequest{Method: "cash", ChangeFor: decPtr("50.00")},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TicketNumber)
	assert.True(t, dec("51.80").Equal(resp.Subtotal))
	assert.True(t, dec("5.18").Equal(resp.DiscountAmount))
	assert.True(t, dec("46.62").Equal(resp.TotalAmount))
	assert.True(t, dec("3.38").Equal(resp.ChangeAmount))

	// Drawer keeps the total, not the handed-over amount.
	require.Len(t, resp.Tenders, 1)
	assert.True(t, dec("46.62").Equal(resp.Tenders[0].Amount))

	summary, err := f.cashSvc.Summarize(context.Background(), f.session)
	require.NoError(t, err)
	assert.True(t, dec("46.62").Equal(summary.SalesTotal))
	assert.True(t, dec("146.62").Equal(summary.ExpectedBalance))
}

func TestRegisterSaleWeighableItem(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.salad.ID.String(), WeightKg: decPtr("0.537")},
		},
		Payment: dto.PaymentRequest{Method: "pix"},
	})
	require.NoError(t, err)

	assert.True(t, dec("19.28").Equal(resp.TotalAmount), "got %s", resp.TotalAmount)
	require.Len(t, resp.Items, 1)
	require.NotNil(t, resp.Items[0].WeightKg)
	assert.True(t, dec("0.537").Equal(*resp.Items[0].WeightKg))

	// PIX never reaches the drawer.
	summary, err := f.cashSvc.Summarize(context.Background(), f.session)
	require.NoError(t, err)
	assert.True(t, dec("100.00").Equal(summary.ExpectedBalance))
	assert.True(t, dec("19.28").Equal(summary.SalesTotal))
}

func TestRegisterSaleMixedTenders(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.burger.ID.String(), Quantity: 2},
		},
		Discount: &dto.DiscountRequest{Type: "percentage", Value: dec("10")},
		Payment: dto.PaymentRequest{
			Method: "mixed",
			Tenders: []dto.TenderRequest{
				{Method: "cash", Amount: dec("20.00")},
				{Method: "credit_card", Amount: dec("26.62")},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Tenders, 2)

	// One ledger entry per tender, only the cash one in the drawer.
	summary, err := f.cashSvc.Summarize(context.Background(), f.session)
	require.NoError(t, err)
	assert.True(t, dec("46.62").Equal(summary.SalesTotal))
	assert.True(t, dec("120.00").Equal(summary.ExpectedBalance))
	assert.True(t, dec("26.62").Equal(summary.IncomeByMethod["credit_card"]))
}

func TestRegisterSaleMixedMismatchPersistsNothing(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.burger.ID.String(), Quantity: 2},
		},
		Discount: &dto.DiscountRequest{Type: "percentage", Value: dec("10")},
		Payment: dto.PaymentRequest{
			Method: "mixed",
			Tenders: []dto.TenderRequest{
				{Method: "cash", Amount: dec("20.00")},
				{Method: "credit_card", Amount: dec("20.00")},
			},
		},
	})
	assert.ErrorIs(t, err, checkout.ErrMixedTenderMismatch)

	assert.Empty(t, f.saleRepo.sales)
	entries, _ := f.cashRepo.ListEntries(context.Background(), f.session)
	assert.Empty(t, entries)
}

func TestRegisterSaleRequiresOpenSession(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.cashSvc.Close(context.Background(), dto.CloseSessionRequest{
		CashSessionID: f.session.String(),
		CountedAmount: dec("100.00"),
	})
	require.NoError(t, err)

	_, err = f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.burger.ID.String(), Quantity: 1},
		},
		Payment: dto.PaymentRequest{Method: "cash"},
	})
	assert.ErrorIs(t, err, ErrRegisterNotOpen)
}

func TestRegisterSaleRejectsInactiveProduct(t *testing.T) {
	f := newSaleFixture(t)
	f.burger.Active = false

	_, err := f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.burger.ID.String(), Quantity: 1},
		},
		Payment: dto.PaymentRequest{Method: "cash"},
	})
	assert.Error(t, err)
	assert.Empty(t, f.saleRepo.sales)
}

func TestTicketNumbersAreSequential(t *testing.T) {
	f := newSaleFixture(t)

	for want := 1; want <= 3; want++ {
		resp, err := f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
			CashSessionID: f.session.String(),
			Items: []dto.SaleItemRequest{
				{ProductID: f.burger.ID.String(), Quantity: 1},
			},
			Payment: dto.PaymentRequest{Method: "debit_card"},
		})
		require.NoError(t, err)
		assert.Equal(t, want, resp.TicketNumber)
	}
}

// ── CancelSale ───────────────────────────────────────────────────────────────

func TestCancelSaleWritesInverseEntries(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.burger.ID.String(), Quantity: 2},
		},
		Payment: dto.PaymentRequest{Method: "cash"},
	})
	require.NoError(t, err)

	saleID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.CancelSale(context.Background(), saleID, "customer walked out"))

	sale, err := f.saleRepo.FindByID(context.Background(), saleID)
	require.NoError(t, err)
	assert.True(t, sale.IsCancelled)
	require.NotNil(t, sale.CancelReason)
	assert.Equal(t, "customer walked out", *sale.CancelReason)

	// The inverse expense balances the drawer back to the opening float.
	summary, err := f.cashSvc.Summarize(context.Background(), f.session)
	require.NoError(t, err)
	assert.True(t, dec("100.00").Equal(summary.ExpectedBalance), "got %s", summary.ExpectedBalance)
	assert.True(t, dec("51.80").Equal(summary.TotalExpense))
}

func TestCancelSaleTwiceFails(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.burger.ID.String(), Quantity: 1},
		},
		Payment: dto.PaymentRequest{Method: "cash"},
	})
	require.NoError(t, err)

	saleID, _ := uuid.Parse(resp.ID)
	require.NoError(t, f.svc.CancelSale(context.Background(), saleID, "wrong order entered"))
	assert.ErrorIs(t, f.svc.CancelSale(context.Background(), saleID, "again"), ErrSaleCancelled)
}

// ── ListSales ────────────────────────────────────────────────────────────────

func TestListSalesFiltersCancelled(t *testing.T) {
	f := newSaleFixture(t)

	first, err := f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items:         []dto.SaleItemRequest{{ProductID: f.burger.ID.String(), Quantity: 1}},
		Payment:       dto.PaymentRequest{Method: "cash"},
	})
	require.NoError(t, err)
	_, err = f.svc.RegisterSale(context.Background(), f.operator, dto.RegisterSaleRequest{
		CashSessionID: f.session.String(),
		Items:         []dto.SaleItemRequest{{ProductID: f.burger.ID.String(), Quantity: 1}},
		Payment:       dto.PaymentRequest{Method: "pix"},
	})
	require.NoError(t, err)

	firstID, _ := uuid.Parse(first.ID)
	require.NoError(t, f.svc.CancelSale(context.Background(), firstID, "duplicate ticket"))

	completed, err := f.svc.ListSales(context.Background(), dto.SaleFilter{Status: "completed", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed.Total)

	cancelled, err := f.svc.ListSales(context.Background(), dto.SaleFilter{Status: "cancelled", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled.Total)

	all, err := f.svc.ListSales(context.Background(), dto.SaleFilter{Status: "all", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
}

// ── SplitPreview ─────────────────────────────────────────────────────────────

func TestSplitPreviewEqual(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.svc.SplitPreview(dto.SplitPreviewRequest{
		Mode: "equal", Total: dec("100.00"), Ways: 3,
	})
	require.NoError(t, err)

	require.Len(t, resp.Shares, 3)
	assert.True(t, dec("33.34").Equal(resp.Shares[0]))
	assert.True(t, dec("33.33").Equal(resp.Shares[1]))
	assert.True(t, dec("100.00").Equal(resp.ShareSum))
}

func TestSplitPreviewCustomMismatch(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.svc.SplitPreview(dto.SplitPreviewRequest{
		Mode:   "custom",
		Total:  dec("100.00"),
		Shares: []decimal.Decimal{dec("60.00"), dec("30.00")},
	})
	assert.ErrorIs(t, err, checkout.ErrSplitMismatch)
}
