package services

import (
	"context"
	"github.com/rs/zerolog/log"
	"storefront/models"
	"storefront/repository"
	"strings"
)

type ProductCache interface {
	Get(ctx context.Context) ([]models.Product, bool, error)
	Set(ctx context.Context, products []models.Product) error
	Invalidate(ctx context.Context) error
}

type ProductInput struct {
	ProductName string
	ShoeType    string
	Image       []string
	Price       string
	Rating      *float64
	Description string
	Color       []string
	Size        []string
}

func (in ProductInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.ProductName) == "" {
		missing = append(missing, "productName")
	}
	if strings.TrimSpace(in.ShoeType) == "" {
		missing = append(missing, "shoeType")
	}
	if strings.TrimSpace(in.Price) == "" {
		missing = append(missing, "price")
	}
	if in.Rating == nil {
		missing = append(missing, "rating")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return validationError("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (in ProductInput) applyTo(product *models.Product) {
	product.ProductName = in.ProductName
	product.ShoeType = in.ShoeType
	product.Image = orEmpty(in.Image)
	product.Price = in.Price
	product.Rating = *in.Rating
	product.Description = in.Description
	product.Color = orEmpty(in.Color)
	product.Size = orEmpty(in.Size)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

type CatalogService struct {
	store repository.Store
	cache ProductCache
}

// NewCatalogService builds the service; cache may be nil.
func NewCatalogService(store repository.Store, cache ProductCache) *CatalogService {
	return &CatalogService{store: store, cache: cache}
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{}
	in.applyTo(product)
	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, storeError("create product", err)
	}

	s.invalidate(ctx)
	return product, nil
}

// ListProducts returns every product, from the cache when it is warm.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		products, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("read product cache")
		} else if ok {
			return products, nil
		}
	}

	products, err := s.store.Products().FindAll(ctx)
	if err != nil {
		return nil, storeError("list products", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			log.Warn().Err(err).Msg("fill product cache")
		}
	}
	return products, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var product *models.Product
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		product, err = tx.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		in.applyTo(product)
		return tx.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, storeError("update product", err)
	}

	s.invalidate(ctx)
	return product, nil
}

// DeleteProduct removes the product and any cart items pointing at it. Deleting an
// unknown id is not an error.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Products().Delete(ctx, id); err != nil {
			return err
		}
		removed, err := tx.Cart().DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		if removed > 0 {
			log.Info().Str("productId", id).Int64("cartItems", removed).Msg("removed cart items of deleted product")
		}
		return nil
	})
	if err != nil {
		return storeError("delete product", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidate product cache")
	}
}
