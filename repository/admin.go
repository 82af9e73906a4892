package repository

import (
	"context"
	"gorm.io/gorm"
	"storefront/models"
)

type adminRepository struct {
	db *gorm.DB
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) FindByName(ctx context.Context, adminname string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, "adminname = ?", adminname).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (r *adminRepository) FindAll(ctx context.Context) ([]models.Admin, error) {
	admins := []models.Admin{}
	err := r.db.WithContext(ctx).Order("adminname").Find(&admins).Error
	return admins, err
}
