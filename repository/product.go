package repository

import (
	"context"
	"gorm.io/gorm"
	"storefront/models"
)

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).Order("created_at").Find(&products).Error
	return products, err
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *productRepository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
