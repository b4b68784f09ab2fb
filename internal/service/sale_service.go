package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saborpos/internal/checkout"
	"saborpos/internal/dto"
	"saborpos/internal/model"
	"saborpos/internal/money"
	"saborpos/internal/repository"
	"saborpos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSaleNotFound  = errors.New("sale not found")
	ErrSaleCancelled = errors.New("sale is already cancelled")
)

type SaleService interface {
	RegisterSale(ctx context.Context, operatorID uuid.UUID, req dto.RegisterSaleRequest) (*dto.SaleResponse, error)
	CancelSale(ctx context.Context, id uuid.UUID, reason string) error
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	SplitPreview(req dto.SplitPreviewRequest) (*dto.SplitPreviewResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	products   repository.ProductRepository
	cash       CashService
	cashRepo   repository.CashRepository
	dispatcher *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	cash CashService,
	cashRepo repository.CashRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:       repo,
		products:   products,
		cash:       cash,
		cashRepo:   cashRepo,
		dispatcher: dispatcher,
	}
}

// ── RegisterSale ──────────────────────────────────────────────────────────────
// Checkout confirmation:
//  1. Validate the cash session is open
//  2. Price the cart (unit vs weighable), apply line and cart discounts
//  3. Validate the payment (single tender or mixed breakdown)
//  4. BEGIN TX: next ticket, create sale + items + tenders, mirror ledger entries
//  5. COMMIT
//  6. (async) enqueue receipt job
//
// Every validation resolves before step 4 — a rejected sale touches nothing.

func (s *saleService) RegisterSale(ctx context.Context, operatorID uuid.UUID, req dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	sessionID, err := uuid.Parse(req.CashSessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid cash_session_id: %w", err)
	}
	if _, err := s.cash.EnsureOpen(ctx, sessionID); err != nil {
		return nil, err
	}

	// Price the cart.
	chk := checkout.New()
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("product %s not found", item.ProductID)
		}
		if !p.Active {
			return nil, fmt.Errorf("product %s is inactive and cannot be sold", p.Name)
		}
		if err := chk.Cart.AddItem(p, item.Quantity, item.WeightKg); err != nil {
			return nil, err
		}
		if item.Discount.IsPositive() {
			if err := chk.Cart.SetLineDiscount(pid, item.Discount); err != nil {
				return nil, err
			}
		}
	}

	discountPct := decimal.Zero
	if req.Discount != nil {
		chk.SetDiscount(checkout.DiscountType(req.Discount.Type), req.Discount.Value)
		if chk.Discount().Type == checkout.DiscountPercentage {
			discountPct = chk.Discount().Value
		}
	}

	subtotal := money.Round2(chk.Cart.Subtotal())
	discountAmount := chk.DiscountAmount()
	total := chk.Total()

	// Validate the payment.
	changeAmount := decimal.Zero
	var tenders []model.SaleTender

	if req.Payment.Method == string(checkout.PaymentMixed) {
		entries := make([]checkout.Tender, 0, len(req.Payment.Tenders))
		for _, t := range req.Payment.Tenders {
			entries = append(entries, checkout.Tender{
				Method: checkout.PaymentMethod(t.Method),
				Amount: t.Amount,
			})
		}
		if err := checkout.ValidateMixed(total, entries); err != nil {
			return nil, err
		}
		for i, t := range entries {
			tenders = append(tenders, model.SaleTender{
				Position: i,
				Method:   string(t.Method),
				Amount:   money.Round2(t.Amount),
			})
		}
	} else {
		changeDue, err := checkout.ValidateSingle(total, checkout.PaymentMethod(req.Payment.Method), req.Payment.ChangeFor)
		if err != nil {
			return nil, err
		}
		changeAmount = changeDue
		// The drawer keeps the total; change is returned to the customer.
		tenders = []model.SaleTender{{Method: req.Payment.Method, Amount: total}}
	}

	// ACID transaction.
	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ticket, err := s.repo.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}

		sale = model.Sale{
			TicketNumber:       ticket,
			CashSessionID:      sessionID,
			OperatorID:         operatorID,
			Subtotal:           subtotal,
			DiscountAmount:     discountAmount,
			DiscountPercentage: discountPct,
			TotalAmount:        total,
			PaymentType:        req.Payment.Method,
			ChangeAmount:       changeAmount,
			Tenders:            tenders,
		}
		for _, line := range chk.Cart.Lines() {
			item := model.SaleItem{
				ProductID:      line.ProductID,
				ProductCode:    line.ProductCode,
				ProductName:    line.ProductName,
				Quantity:       line.Quantity,
				UnitPrice:      line.UnitPrice,
				PricePerGram:   line.PricePerGram,
				DiscountAmount: line.Discount,
				Subtotal:       line.Subtotal,
			}
			if line.PricePerGram != nil {
				w := line.WeightKg
				item.WeightKg = &w
			}
			sale.Items = append(sale.Items, item)
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		for _, entry := range saleEntries(&sale) {
			e := entry
			if err := s.cashRepo.CreateEntryTx(tx, &e); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt job is best-effort: the sale is committed either way.
	if s.dispatcher != nil {
		payload := worker.ReceiptPayload{SaleID: sale.ID.String()}
		if req.CustomerEmail != nil {
			payload.CustomerEmail = *req.CustomerEmail
		}
		if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to enqueue receipt job")
		}
	}

	return saleToResponse(&sale), nil
}

// ── CancelSale ───────────────────────────────────────────────────────────────
// The sale record is never deleted: cancellation flips the flag, stores the
// reason and balances the drawer with inverse (expense) entries. Requires the
// sale's session to still be open.

func (s *saleService) CancelSale(ctx context.Context, id uuid.UUID, reason string) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrSaleNotFound
	}
	if sale.IsCancelled {
		return ErrSaleCancelled
	}
	if _, err := s.cash.EnsureOpen(ctx, sale.CashSessionID); err != nil {
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, t := range sale.Tenders {
			entry := model.CashEntry{
				CashSessionID: sale.CashSessionID,
				Type:          "expense",
				Method:        t.Method,
				Amount:        t.Amount,
				Description:   fmt.Sprintf("Cancellation of sale #%d: %s", sale.TicketNumber, reason),
				ReferenceID:   &sale.ID,
			}
			if err := s.cashRepo.CreateEntryTx(tx, &entry); err != nil {
				return err
			}
		}
		return s.repo.MarkCancelledTx(tx, id, reason)
	})
}

// ── ListSales ────────────────────────────────────────────────────────────────

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── SplitPreview ─────────────────────────────────────────────────────────────
// UI helper for the bill-split screen. Custom shares that do not reconstruct
// the total are rejected here, before the operator can confirm.

func (s *saleService) SplitPreview(req dto.SplitPreviewRequest) (*dto.SplitPreviewResponse, error) {
	total := money.Round2(req.Total)

	var shares []decimal.Decimal
	switch req.Mode {
	case "equal":
		split, err := checkout.EqualSplit(total, req.Ways)
		if err != nil {
			return nil, err
		}
		shares = split
	case "custom":
		if err := checkout.ValidateCustomSplit(total, req.Shares); err != nil {
			return nil, err
		}
		shares = req.Shares
	default:
		return nil, checkout.ErrSplitMismatch
	}

	sum := decimal.Zero
	for _, share := range shares {
		sum = sum.Add(share)
	}
	return &dto.SplitPreviewResponse{
		Mode:     req.Mode,
		Total:    total,
		Shares:   shares,
		ShareSum: money.Round2(sum),
	}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func saleToResponse(v *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.SaleItemResponse{
			ProductCode:  item.ProductCode,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			WeightKg:     item.WeightKg,
			UnitPrice:    item.UnitPrice,
			PricePerGram: item.PricePerGram,
			Discount:     item.DiscountAmount,
			Subtotal:     item.Subtotal,
		})
	}
	tenders := make([]dto.TenderRequest, 0, len(v.Tenders))
	for _, t := range v.Tenders {
		tenders = append(tenders, dto.TenderRequest{Method: t.Method, Amount: t.Amount})
	}
	return &dto.SaleResponse{
		ID:                 v.ID.String(),
		TicketNumber:       v.TicketNumber,
		CashSessionID:      v.CashSessionID.String(),
		Items:              items,
		Subtotal:           v.Subtotal,
		DiscountAmount:     v.DiscountAmount,
		DiscountPercentage: v.DiscountPercentage,
		TotalAmount:        v.TotalAmount,
		PaymentType:        v.PaymentType,
		Tenders:            tenders,
		ChangeAmount:       v.ChangeAmount,
		IsCancelled:        v.IsCancelled,
		CancelReason:       v.CancelReason,
		CreatedAt:          v.CreatedAt.Format(time.RFC3339),
	}
}
