package services

import (
	"context"
	"storefront/models"
	"storefront/repository"
	"strings"
)

type CartItemInput struct {
	UserID      string
	ProductID   string
	ProductName string
	Price       string
	Quantity    int
}

type CartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) *CartService {
	return &CartService{store: store}
}

// AddOrIncrement creates the (user, product) cart item, or adds in.Quantity to the
// existing one. A zero quantity counts as one.
func (s *CartService) AddOrIncrement(ctx context.Context, in CartItemInput) (*models.CartItem, error) {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return nil, validationError("userId is required")
	case strings.TrimSpace(in.ProductID) == "":
		return nil, validationError("productId is required")
	case strings.TrimSpace(in.ProductName) == "":
		return nil, validationError("productName is required")
	case strings.TrimSpace(in.Price) == "":
		return nil, validationError("price is required")
	case in.Quantity < 0:
		return nil, validationError("quantity must be at least 1")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	item, err := s.store.Cart().UpsertIncrement(ctx, &models.CartItem{
		UserID:      in.UserID,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Price:       in.Price,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return nil, storeError("add cart item", err)
	}
	return item, nil
}

func (s *CartService) ListCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	items, err := s.store.Cart().FindByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list cart", err)
	}
	return items, nil
}

// UpdateQuantity replaces the stored quantity.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, validationError("quantity must be at least 1")
	}

	var item *models.CartItem
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		item, err = tx.Cart().Find(ctx, userID, productID)
		if err != nil {
			return err
		}
		if err := tx.Cart().SetQuantity(ctx, userID, productID, quantity); err != nil {
			return err
		}
		item.Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, storeError("update cart item", err)
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	removed, err := s.store.Cart().Delete(ctx, userID, productID)
	if err != nil {
		return storeError("remove cart item", err)
	}
	if removed == 0 {
		return storeError("remove cart item", ErrNotFound)
	}
	return nil
}
