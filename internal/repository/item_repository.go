package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
)

type ItemGroupRepository struct {
	db *gorm.DB
}

func NewItemGroupRepository(db *gorm.DB) *ItemGroupRepository {
	return &ItemGroupRepository{db: db}
}

func (r *ItemGroupRepository) ByIDs(ctx context.Context, ids []string) ([]models.ItemGroup, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.ItemGroup
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *ItemGroupRepository) ByName(ctx context.Context, name string) (*models.ItemGroup, error) {
	var g models.ItemGroup
	result := r.db.WithContext(ctx).First(&g, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item group: %w", result.Error)
	}
	return &g, nil
}

func (r *ItemGroupRepository) Create(ctx context.Context, g *models.ItemGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *ItemGroupRepository) Update(ctx context.Context, g *models.ItemGroup) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *ItemGroupRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.ItemGroup{}, "id = ?", id).Error
}

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) ByIDs(ctx context.Context, ids []string) ([]models.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Item
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *ItemRepository) ByNumber(ctx context.Context, number string) (*models.Item, error) {
	var i models.Item
	result := r.db.WithContext(ctx).First(&i, "number = ?", number)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", result.Error)
	}
	return &i, nil
}

// MaxNumber retrieves the highest sequence number used under a prefix, 0
// when none; malformed numbers under the prefix are ignored
func (r *ItemRepository) MaxNumber(ctx context.Context, prefix string) (int, error) {
	return maxNomenclatureNumber(ctx, r.db, "items", prefix)
}

func (r *ItemRepository) Create(ctx context.Context, i *models.Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ItemRepository) Update(ctx context.Context, i *models.Item) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error
}

func (r *ItemRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) ByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Product
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *ProductRepository) ByNumber(ctx context.Context, number string) (*models.Product, error) {
	var p models.Product
	result := r.db.WithContext(ctx).First(&p, "number = ?", number)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", result.Error)
	}
	return &p, nil
}

func (r *ProductRepository) MaxNumber(ctx context.Context, prefix string) (int, error) {
	return maxNomenclatureNumber(ctx, r.db, "products", prefix)
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *ProductRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

// maxNomenclatureNumber computes the max numeric suffix of well-formed
// XXX-NNNNNN numbers under one prefix.
func maxNomenclatureNumber(ctx context.Context, db *gorm.DB, table, prefix string) (int, error) {
	var max int
	err := db.WithContext(ctx).Table(table).
		Where("number LIKE ?", prefix+"-%").
		Where("number ~ '^[A-Z0-9]{3}-[0-9]{6}$'").
		Select("COALESCE(MAX(CAST(SUBSTRING(number FROM 5) AS INTEGER)), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute max number: %w", err)
	}
	return max, nil
}
