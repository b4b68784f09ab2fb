package repository

import (
	"context"

	"saborpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CashRepository interface {
	CreateSession(ctx context.Context, s *model.CashSession) error
	FindOpenByStore(ctx context.Context, storeID uuid.UUID) (*model.CashSession, error)
	FindOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*model.CashSession, error)
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error)
	UpdateSession(ctx context.Context, s *model.CashSession) error
	CreateEntry(ctx context.Context, e *model.CashEntry) error
	CreateEntryTx(tx *gorm.DB, e *model.CashEntry) error
	ListEntries(ctx context.Context, sessionID uuid.UUID) ([]model.CashEntry, error)
	ListClosed(ctx context.Context, page, limit int) ([]model.CashSession, int64, error)
}

type cashRepo struct{ db *gorm.DB }

func NewCashRepository(db *gorm.DB) CashRepository { return &cashRepo{db: db} }

func (r *cashRepo) CreateSession(ctx context.Context, s *model.CashSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cashRepo) FindOpenByStore(ctx context.Context, storeID uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).Where("store_id = ? AND status = 'open'", storeID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cashRepo) FindOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).Where("operator_id = ? AND status = 'open'", operatorID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cashRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).Preload("Entries").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cashRepo) UpdateSession(ctx context.Context, s *model.CashSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cashRepo) CreateEntry(ctx context.Context, e *model.CashEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *cashRepo) CreateEntryTx(tx *gorm.DB, e *model.CashEntry) error {
	return tx.Create(e).Error
}

func (r *cashRepo) ListEntries(ctx context.Context, sessionID uuid.UUID) ([]model.CashEntry, error) {
	var entries []model.CashEntry
	err := r.db.WithContext(ctx).Where("cash_session_id = ?", sessionID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *cashRepo) ListClosed(ctx context.Context, page, limit int) ([]model.CashSession, int64, error) {
	var sessions []model.CashSession
	var total int64
	q := r.db.WithContext(ctx).Model(&model.CashSession{}).Where("status = 'closed'")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.
		Order("closed_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}
