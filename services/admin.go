package services

import (
	"context"
	"errors"
	"github.com/rs/zerolog/log"
	"storefront/models"
	"storefront/repository"
)

type AdminService struct {
	store repository.Store
}

func NewAdminService(store repository.Store) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) Login(ctx context.Context, adminname, adminpass string) (*models.Admin, error) {
	admin, err := s.store.Admins().FindByName(ctx, adminname)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("find admin", err)
	}
	if !passwordMatches(admin.Adminpass, adminpass) {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// ListAdmins returns every admin; Adminpass is never serialized.
func (s *AdminService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	admins, err := s.store.Admins().FindAll(ctx)
	if err != nil {
		return nil, storeError("list admins", err)
	}
	return admins, nil
}

// Seed creates the admin unless one with that name exists. It reports whether a
// record was created.
func (s *AdminService) Seed(ctx context.Context, adminname, adminpass string) (bool, error) {
	if adminname == "" || adminpass == "" {
		return false, validationError("adminname and adminpass are required")
	}

	created := false
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		_, err := tx.Admins().FindByName(ctx, adminname)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		hashed, err := hashPassword(adminpass)
		if err != nil {
			return err
		}
		if err := tx.Admins().Create(ctx, &models.Admin{Adminname: adminname, Adminpass: hashed}); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, storeError("seed admin", err)
	}
	if created {
		log.Info().Str("adminname", adminname).Msg("admin seeded")
	}
	return created, nil
}
