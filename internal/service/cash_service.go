package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"saborpos/internal/dto"
	"saborpos/internal/model"
	"saborpos/internal/money"
	"saborpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger errors. They complete the validation taxonomy started in
// internal/checkout; all of them block before anything is persisted.
var (
	ErrRegisterAlreadyOpen   = errors.New("a cash register session is already open for this store")
	ErrRegisterNotOpen       = errors.New("no open cash register session")
	ErrJustificationRequired = errors.New("justification required: counted amount diverges from expected balance")
	ErrSessionNotFound       = errors.New("cash session not found")
	ErrInvalidEntryAmount    = errors.New("cash entry amount must be greater than zero")
)

// Variance classifications shown to the operator at close.
const (
	VarianceShort = "falta"
	VarianceOver  = "sobra"
	VarianceExact = "exato"
)

type CashService interface {
	Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionReportResponse, error)
	RecordEntry(ctx context.Context, req dto.CashEntryRequest) error
	RecordSale(ctx context.Context, sessionID uuid.UUID, sale *model.Sale) error
	Summarize(ctx context.Context, sessionID uuid.UUID) (*dto.CashSummaryResponse, error)
	PreviewClose(ctx context.Context, req dto.ClosePreviewRequest) (*dto.VarianceResponse, error)
	Close(ctx context.Context, req dto.CloseSessionRequest) (*dto.SessionReportResponse, error)
	Report(ctx context.Context, sessionID uuid.UUID) (*dto.SessionReportResponse, error)
	Active(ctx context.Context, operatorID uuid.UUID) (*dto.SessionReportResponse, error)
	History(ctx context.Context, page, limit int) ([]dto.SessionReportResponse, int64, error)
	// EnsureOpen is called by SaleService before committing a sale.
	EnsureOpen(ctx context.Context, sessionID uuid.UUID) (*model.CashSession, error)
}

type cashService struct {
	repo repository.CashRepository
}

func NewCashService(repo repository.CashRepository) CashService {
	return &cashService{repo: repo}
}

// ── Open ─────────────────────────────────────────────────────────────────────

func (s *cashService) Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionReportResponse, error) {
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("invalid store_id: %w", err)
	}
	if req.OpeningAmount.IsNegative() {
		return nil, ErrInvalidEntryAmount
	}

	// Guard: one open session per store. The unique partial index on the
	// sessions table backs this up across terminals.
	if existing, err := s.repo.FindOpenByStore(ctx, storeID); err == nil && existing != nil {
		return nil, ErrRegisterAlreadyOpen
	}

	session := &model.CashSession{
		StoreID:       storeID,
		OperatorID:    operatorID,
		OpeningAmount: money.Round2(req.OpeningAmount),
		Status:        "open",
		OpenedAt:      time.Now(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return buildReport(session), nil
}

// ── RecordEntry ──────────────────────────────────────────────────────────────
// Manual deposit or expense. Entries are immutable: no update, no delete.

func (s *cashService) RecordEntry(ctx context.Context, req dto.CashEntryRequest) error {
	sessionID, err := uuid.Parse(req.CashSessionID)
	if err != nil {
		return fmt.Errorf("invalid cash_session_id: %w", err)
	}
	if !req.Amount.IsPositive() {
		return ErrInvalidEntryAmount
	}
	if _, err := s.EnsureOpen(ctx, sessionID); err != nil {
		return err
	}

	entry := &model.CashEntry{
		CashSessionID: sessionID,
		Type:          req.Type,
		Method:        req.Method,
		Amount:        money.Round2(req.Amount),
		Description:   req.Description,
	}
	return s.repo.CreateEntry(ctx, entry)
}

// ── RecordSale ───────────────────────────────────────────────────────────────

// RecordSale mirrors a finalized sale into the ledger: one income entry per
// tender, each tagged with its own payment method.
func (s *cashService) RecordSale(ctx context.Context, sessionID uuid.UUID, sale *model.Sale) error {
	if _, err := s.EnsureOpen(ctx, sessionID); err != nil {
		return err
	}
	for _, entry := range saleEntries(sale) {
		e := entry
		if err := s.repo.CreateEntry(ctx, &e); err != nil {
			return err
		}
	}
	return nil
}

// saleEntries derives the ledger entries for a finalized sale. Shared with
// SaleService, which writes them inside the sale transaction.
func saleEntries(sale *model.Sale) []model.CashEntry {
	entries := make([]model.CashEntry, 0, len(sale.Tenders))
	for _, t := range sale.Tenders {
		entries = append(entries, model.CashEntry{
			CashSessionID: sale.CashSessionID,
			Type:          "income",
			Method:        t.Method,
			Amount:        t.Amount,
			Description:   fmt.Sprintf("Sale #%d", sale.TicketNumber),
			ReferenceID:   &sale.ID,
		})
	}
	return entries
}

// ── Summarize ────────────────────────────────────────────────────────────────

func (s *cashService) Summarize(ctx context.Context, sessionID uuid.UUID) (*dto.CashSummaryResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	summary := computeSummary(session)
	return &summary, nil
}

// computeSummary is a pure function of (opening_amount, entries); it never
// mutates the session and is recomputed on every call.
//
// expected_balance is strictly cash-scoped: opening float plus cash income
// minus expenses. sales_total and other_income_total aggregate every payment
// method — they are reporting figures, not drawer contents.
func computeSummary(s *model.CashSession) dto.CashSummaryResponse {
	salesTotal := decimal.Zero
	otherIncome := decimal.Zero
	totalExpense := decimal.Zero
	cashIncome := decimal.Zero
	byMethod := make(map[string]decimal.Decimal)

	for _, e := range s.Entries {
		switch e.Type {
		case "expense":
			totalExpense = totalExpense.Add(e.Amount)
		case "income":
			byMethod[e.Method] = byMethod[e.Method].Add(e.Amount)
			if e.SaleDerived() {
				salesTotal = salesTotal.Add(e.Amount)
			} else {
				otherIncome = otherIncome.Add(e.Amount)
			}
			if e.Method == "cash" {
				cashIncome = cashIncome.Add(e.Amount)
			}
		}
	}

	return dto.CashSummaryResponse{
		SalesTotal:       money.Round2(salesTotal),
		OtherIncomeTotal: money.Round2(otherIncome),
		TotalExpense:     money.Round2(totalExpense),
		ExpectedBalance:  money.Round2(s.OpeningAmount.Add(cashIncome).Sub(totalExpense)),
		IncomeByMethod:   byMethod,
	}
}

// ── Variance ─────────────────────────────────────────────────────────────────

// buildVariance is the single place where difference, classification and the
// justification gate are derived — preview and close must never disagree.
func buildVariance(expected, counted decimal.Decimal) dto.VarianceResponse {
	diff := money.Round2(counted.Sub(expected))
	return dto.VarianceResponse{
		ExpectedBalance:       expected,
		CountedAmount:         counted,
		Difference:            diff,
		Classification:        classifyVariance(diff),
		JustificationRequired: diff.Abs().GreaterThan(money.Epsilon),
	}
}

func classifyVariance(diff decimal.Decimal) string {
	switch {
	case diff.Abs().LessThanOrEqual(money.Epsilon):
		return VarianceExact
	case diff.IsNegative():
		return VarianceShort
	default:
		return VarianceOver
	}
}

func (s *cashService) PreviewClose(ctx context.Context, req dto.ClosePreviewRequest) (*dto.VarianceResponse, error) {
	sessionID, err := uuid.Parse(req.CashSessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid cash_session_id: %w", err)
	}
	session, err := s.EnsureOpen(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary := computeSummary(session)
	v := buildVariance(summary.ExpectedBalance, money.Round2(req.CountedAmount))
	return &v, nil
}

// ── Close ────────────────────────────────────────────────────────────────────
// Terminal transition. A divergence beyond the tolerance requires a non-empty
// justification; after close the session accepts no further entries.

func (s *cashService) Close(ctx context.Context, req dto.CloseSessionRequest) (*dto.SessionReportResponse, error) {
	sessionID, err := uuid.Parse(req.CashSessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid cash_session_id: %w", err)
	}
	session, err := s.EnsureOpen(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := computeSummary(session)
	v := buildVariance(summary.ExpectedBalance, money.Round2(req.CountedAmount))

	if v.JustificationRequired &&
		(req.Justification == nil || strings.TrimSpace(*req.Justification) == "") {
		return nil, ErrJustificationRequired
	}

	now := time.Now()
	counted := v.CountedAmount
	diff := v.Difference
	class := v.Classification
	session.ClosingAmount = &counted
	session.Difference = &diff
	session.VarianceClass = &class
	session.Justification = req.Justification
	session.Status = "closed"
	session.ClosedAt = &now

	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return buildReport(session), nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *cashService) Report(ctx context.Context, sessionID uuid.UUID) (*dto.SessionReportResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return buildReport(session), nil
}

func (s *cashService) Active(ctx context.Context, operatorID uuid.UUID) (*dto.SessionReportResponse, error) {
	session, err := s.repo.FindOpenByOperator(ctx, operatorID)
	if err != nil || session == nil {
		return nil, nil
	}
	// Reload with entries for the summary.
	return s.Report(ctx, session.ID)
}

func (s *cashService) History(ctx context.Context, page, limit int) ([]dto.SessionReportResponse, int64, error) {
	sessions, total, err := s.repo.ListClosed(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	reports := make([]dto.SessionReportResponse, 0, len(sessions))
	for i := range sessions {
		reports = append(reports, *buildReport(&sessions[i]))
	}
	return reports, total, nil
}

func (s *cashService) EnsureOpen(ctx context.Context, sessionID uuid.UUID) (*model.CashSession, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if !session.Open() {
		return nil, ErrRegisterNotOpen
	}
	return session, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func buildReport(s *model.CashSession) *dto.SessionReportResponse {
	report := &dto.SessionReportResponse{
		CashSessionID: s.ID.String(),
		StoreID:       s.StoreID.String(),
		OperatorID:    s.OperatorID.String(),
		OpeningAmount: s.OpeningAmount,
		Summary:       computeSummary(s),
		Status:        s.Status,
		Justification: s.Justification,
		OpenedAt:      s.OpenedAt.Format(time.RFC3339),
	}

	if s.ClosingAmount != nil && s.Difference != nil && s.VarianceClass != nil {
		report.ClosingAmount = s.ClosingAmount
		report.Variance = &dto.VarianceResponse{
			ExpectedBalance:       money.Round2(s.ClosingAmount.Sub(*s.Difference)),
			CountedAmount:         *s.ClosingAmount,
			Difference:            *s.Difference,
			Classification:        *s.VarianceClass,
			JustificationRequired: s.Difference.Abs().GreaterThan(money.Epsilon),
		}
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(time.RFC3339)
		report.ClosedAt = &t
	}
	return report
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
