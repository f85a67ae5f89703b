package services

import (
	"context"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/infra"
	"storefront-order-service/internal/repository"
)

type CartService struct {
	carts   repository.CartRepository
	catalog infra.CatalogClientInterface
}

func NewCartService(carts repository.CartRepository, catalog infra.CatalogClientInterface) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

// AddOrMergeLine adds a product to the user's cart. A second add of the same
// product merges quantity into the existing line and refreshes its display
// price instead of inserting a duplicate.
func (s *CartService) AddOrMergeLine(ctx context.Context, username string, productID uint64, quantity int) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, domain.Validationf("quantity must be at least 1")
	}

	prod, err := s.catalog.GetProductById(ctx, productID)
	if err != nil {
		return nil, &domain.TransactionError{Op: "catalog lookup", Err: err}
	}
	if prod == nil {
		return nil, domain.Validationf("product %d not found", productID)
	}
	if !prod.InStock {
		return nil, domain.Validationf("product %q is out of stock", prod.Name)
	}

	line, err := s.carts.FindLine(ctx, username, productID)
	if err != nil {
		return nil, &domain.TransactionError{Op: "cart lookup", Err: err}
	}

	if line != nil {
		line.Quantity += quantity
		line.DisplayPrice = prod.Price
	} else {
		line = &domain.CartLine{
			Username:     username,
			ProductID:    productID,
			Quantity:     quantity,
			DisplayPrice: prod.Price,
		}
	}

	if err := s.carts.Save(ctx, line); err != nil {
		return nil, &domain.TransactionError{Op: "cart save", Err: err}
	}
	return line, nil
}

func (s *CartService) RemoveLine(ctx context.Context, username string, lineID uint64) error {
	deleted, err := s.carts.DeleteLine(ctx, username, lineID)
	if err != nil {
		return &domain.TransactionError{Op: "cart delete", Err: err}
	}
	if !deleted {
		return domain.NotFoundf("cart line %d not found", lineID)
	}
	return nil
}

func (s *CartService) ListLines(ctx context.Context, username string) ([]domain.CartLine, error) {
	lines, err := s.carts.ListByUser(ctx, username)
	if err != nil {
		return nil, &domain.TransactionError{Op: "cart list", Err: err}
	}
	return lines, nil
}
