package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mateuszroksana/my-backend/internal/notification"
	"github.com/mateuszroksana/my-backend/internal/repository"
)

// CatalogService contains the business logic for the product catalog.
// It owns the routing between the two category partitions and the
// fire-and-forget push dispatch on product creation.
type CatalogService struct {
	logger        *zap.Logger
	repo          repository.ProductRepository
	notifier      notification.Notifier
	notifyTimeout time.Duration
}

// NewCatalogService creates a new CatalogService. notifyTimeout bounds the
// detached push-notification call so it cannot leak past a slow provider.
func NewCatalogService(
	logger *zap.Logger,
	repo repository.ProductRepository,
	notifier notification.Notifier,
	notifyTimeout time.Duration,
) *CatalogService {
	return &CatalogService{
		logger:        logger,
		repo:          repo,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
	}
}

// CreateProductInput contains the input for creating a product.
type CreateProductInput struct {
	Name        string
	Price       string
	Description string
	ImageURL    string
	Category    string
}

// ListByCategory returns all products in the given partition.
// An empty partition is reported as ErrNotFound, not as an empty success:
// the storefront has always answered "no products" with a 404 and the admin
// frontend depends on it.
func (s *CatalogService) ListByCategory(ctx context.Context, category repository.Category) ([]repository.Product, error) {
	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", category, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no products in %s: %w", category, repository.ErrNotFound)
	}
	return products, nil
}

// Create validates the input, persists the product in the partition selected
// by its category tag, and dispatches the push notification without blocking
// on it. A notification failure is logged and swallowed, never surfaced.
func (s *CatalogService) Create(ctx context.Context, input CreateProductInput) (repository.Product, error) {
	if input.Name == "" {
		return repository.Product{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Price == "" {
		return repository.Product{}, fmt.Errorf("%w: price is required", ErrValidation)
	}
	if input.Description == "" {
		return repository.Product{}, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if input.ImageURL == "" {
		return repository.Product{}, fmt.Errorf("%w: imageUrl is required", ErrValidation)
	}
	if input.Category == "" {
		return repository.Product{}, fmt.Errorf("%w: category is required", ErrValidation)
	}

	partition := repository.PartitionFor(input.Category)
	product := repository.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    partition,
	}

	created, err := s.repo.Insert(ctx, partition, product)
	if err != nil {
		return repository.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	s.logger.Info("product created",
		zap.String("product_id", created.ID),
		zap.String("category", string(partition)),
	)

	// Detached from the request context: a client disconnect must not cancel
	// the push, and the push outcome must not affect the creation result.
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyNewProduct(notifyCtx, created.Name, created.ImageURL); err != nil {
			s.logger.Error("failed to send new product notification",
				zap.String("product_id", created.ID),
				zap.Error(err),
			)
		}
	}()

	return created, nil
}

// Update replaces the mutable fields of a product. The partition is selected
// from the caller-supplied category tag, not from the stored record: an
// update with a mismatched category answers ErrNotFound even when the id
// exists in the other partition.
func (s *CatalogService) Update(ctx context.Context, id, categoryTag string, fields repository.ProductFields) (repository.Product, error) {
	partition := repository.PartitionFor(categoryTag)

	updated, err := s.repo.UpdateFields(ctx, partition, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Product{}, err
		}
		return repository.Product{}, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	s.logger.Info("product updated",
		zap.String("product_id", id),
		zap.String("category", string(partition)),
	)
	return updated, nil
}

// Delete removes a product, using the same caller-supplied partition rule as
// Update, and returns the removed record.
func (s *CatalogService) Delete(ctx context.Context, id, categoryTag string) (repository.Product, error) {
	partition := repository.PartitionFor(categoryTag)

	removed, err := s.repo.Delete(ctx, partition, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Product{}, err
		}
		return repository.Product{}, fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	s.logger.Info("product deleted",
		zap.String("product_id", id),
		zap.String("category", string(partition)),
	)
	return removed, nil
}

// GetByID fetches a product without a category hint: the plain-tea partition
// is probed first, then the herbal one.
func (s *CatalogService) GetByID(ctx context.Context, id string) (repository.Product, error) {
	product, err := s.repo.GetByID(ctx, repository.CategoryTeas, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return repository.Product{}, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	product, err = s.repo.GetByID(ctx, repository.CategoryHerbalTeas, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Product{}, err
		}
		return repository.Product{}, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return product, nil
}
