package repository

import (
	"context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"storefront/models"
	"time"
)

type cartRepository struct {
	db *gorm.DB
}

// UpsertIncrement inserts item, or adds item.Quantity to the row that already holds the
// same (user_id, product_id). The statement is a single INSERT ... ON CONFLICT (or ON
// DUPLICATE KEY on MySQL), so concurrent adds for one pair accumulate.
func (r *cartRepository) UpsertIncrement(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", item.Quantity),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
	if err != nil {
		return nil, err
	}

	// the conflicting row keeps its own id, so read it back by key
	return r.Find(ctx, item.UserID, item.ProductID)
}

func (r *cartRepository) FindByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).
		Error
	return items, err
}

func (r *cartRepository) Find(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity).
		Error
}

func (r *cartRepository) Delete(ctx context.Context, userID, productID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *cartRepository) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
