package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sellx/internal/model"
)

type RegisterRepository interface {
	CreateSession(ctx context.Context, s *model.RegisterSession) error
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.RegisterSession, error)
	FindOpenByRegister(ctx context.Context, registerID int) (*model.RegisterSession, error)
	CloseSession(ctx context.Context, id uuid.UUID) error
}

type registerRepo struct{ db *gorm.DB }

func NewRegisterRepository(db *gorm.DB) RegisterRepository { return &registerRepo{db: db} }

func (r *registerRepo) CreateSession(ctx context.Context, s *model.RegisterSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *registerRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *registerRepo) FindOpenByRegister(ctx context.Context, registerID int) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := r.db.WithContext(ctx).
		Where("register_id = ? AND status = 'open'", registerID).
		First(&s).Error
	return &s, err
}

func (r *registerRepo) CloseSession(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.RegisterSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": "closed", "closed_at": &now}).Error
}
