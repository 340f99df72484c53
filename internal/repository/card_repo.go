package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/model"
)

// CardRepository badge card data access interface
type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	GetByUUID(ctx context.Context, uuid string) (*model.Card, error)
	ListByUser(ctx context.Context, userID string) ([]model.Card, error)
	SetActive(ctx context.Context, uuid string, active bool) error
}

type cardRepo struct {
	db *gorm.DB
}

func NewCardRepo(db *gorm.DB) CardRepository {
	return &cardRepo{db: db}
}

func (r *cardRepo) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *cardRepo) GetByUUID(ctx context.Context, uuid string) (*model.Card, error) {
	var card model.Card
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("uuid = ?", uuid).
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepo) ListByUser(ctx context.Context, userID string) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&cards).Error
	return cards, err
}

func (r *cardRepo) SetActive(ctx context.Context, uuid string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Card{}).
		Where("uuid = ?", uuid).
		Update("is_active", active).Error
}
