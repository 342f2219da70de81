package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
)

type CounterpartyRepository struct {
	db *gorm.DB
}

func NewCounterpartyRepository(db *gorm.DB) *CounterpartyRepository {
	return &CounterpartyRepository{db: db}
}

func (r *CounterpartyRepository) ByIDs(ctx context.Context, ids []string) ([]models.Counterparty, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Counterparty
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *CounterpartyRepository) ByName(ctx context.Context, name string) (*models.Counterparty, error) {
	var c models.Counterparty
	result := r.db.WithContext(ctx).First(&c, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get counterparty: %w", result.Error)
	}
	return &c, nil
}

func (r *CounterpartyRepository) Create(ctx context.Context, c *models.Counterparty) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CounterpartyRepository) Update(ctx context.Context, c *models.Counterparty) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CounterpartyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Counterparty{}, "id = ?", id).Error
}

func (r *CounterpartyRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Counterparty{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) ByIDs(ctx context.Context, ids []string) ([]models.Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Person
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

// ByFullName matches "last first [middle]" as persons have no single
// full-name column
func (r *PersonRepository) ByFullName(ctx context.Context, fullName string) (*models.Person, error) {
	var p models.Person
	result := r.db.WithContext(ctx).
		Where("btrim(concat_ws(' ', last_name, first_name, middle_name)) = ?", fullName).
		First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person: %w", result.Error)
	}
	return &p, nil
}

func (r *PersonRepository) Create(ctx context.Context, p *models.Person) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PersonRepository) Update(ctx context.Context, p *models.Person) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PersonRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Person{}, "id = ?", id).Error
}
