package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
)

type BodyTypeRepository struct {
	db *gorm.DB
}

func NewBodyTypeRepository(db *gorm.DB) *BodyTypeRepository {
	return &BodyTypeRepository{db: db}
}

func (r *BodyTypeRepository) ByIDs(ctx context.Context, ids []string) ([]models.BodyType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.BodyType
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *BodyTypeRepository) ByName(ctx context.Context, name string) (*models.BodyType, error) {
	var b models.BodyType
	result := r.db.WithContext(ctx).First(&b, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get body type: %w", result.Error)
	}
	return &b, nil
}

func (r *BodyTypeRepository) Create(ctx context.Context, b *models.BodyType) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BodyTypeRepository) Update(ctx context.Context, b *models.BodyType) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BodyTypeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.BodyType{}, "id = ?", id).Error
}

type CurrencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) ByIDs(ctx context.Context, ids []string) ([]models.Currency, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Currency
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *CurrencyRepository) ByCode(ctx context.Context, code string) (*models.Currency, error) {
	var c models.Currency
	result := r.db.WithContext(ctx).First(&c, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get currency: %w", result.Error)
	}
	return &c, nil
}

func (r *CurrencyRepository) Create(ctx context.Context, c *models.Currency) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CurrencyRepository) Update(ctx context.Context, c *models.Currency) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CurrencyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Currency{}, "id = ?", id).Error
}

type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) ByIDs(ctx context.Context, ids []string) ([]models.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Unit
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *UnitRepository) ByCode(ctx context.Context, code string) (*models.Unit, error) {
	var u models.Unit
	result := r.db.WithContext(ctx).First(&u, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unit: %w", result.Error)
	}
	return &u, nil
}

func (r *UnitRepository) Create(ctx context.Context, u *models.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UnitRepository) Update(ctx context.Context, u *models.Unit) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UnitRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Unit{}, "id = ?", id).Error
}

func (r *UnitRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Unit{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

type ParameterSetRepository struct {
	db *gorm.DB
}

func NewParameterSetRepository(db *gorm.DB) *ParameterSetRepository {
	return &ParameterSetRepository{db: db}
}

func (r *ParameterSetRepository) ByIDs(ctx context.Context, ids []string) ([]models.ParameterSet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.ParameterSet
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *ParameterSetRepository) ByName(ctx context.Context, name string) (*models.ParameterSet, error) {
	var p models.ParameterSet
	result := r.db.WithContext(ctx).First(&p, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parameter set: %w", result.Error)
	}
	return &p, nil
}

func (r *ParameterSetRepository) Create(ctx context.Context, p *models.ParameterSet) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ParameterSetRepository) Update(ctx context.Context, p *models.ParameterSet) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ParameterSetRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.ParameterSet{}, "id = ?", id).Error
}
