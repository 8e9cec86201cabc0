package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mateuszroksana/my-backend/internal/repository"
)

// ProductRepository implements repository.ProductRepository using in-memory
// maps, one per partition. Used for development and testing.
type ProductRepository struct {
	mu         sync.RWMutex
	partitions map[repository.Category]map[string]repository.Product
}

// NewProductRepository creates a new in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		partitions: map[repository.Category]map[string]repository.Product{
			repository.CategoryTeas:       {},
			repository.CategoryHerbalTeas: {},
		},
	}
}

// ListByCategory returns all products in the given partition.
func (r *ProductRepository) ListByCategory(ctx context.Context, category repository.Category) ([]repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]repository.Product, 0, len(r.partitions[category]))
	for _, p := range r.partitions[category] {
		products = append(products, p)
	}
	return products, nil
}

// GetByID fetches a product from the given partition.
func (r *ProductRepository) GetByID(ctx context.Context, category repository.Category, id string) (repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.partitions[category][id]
	if !exists {
		return repository.Product{}, repository.ErrNotFound
	}
	return product, nil
}

// Insert stores a new product in the given partition with a generated id.
func (r *ProductRepository) Insert(ctx context.Context, category repository.Category, product repository.Product) (repository.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.NewString()
	product.Category = category
	r.partitions[category][product.ID] = product
	return product, nil
}

// UpdateFields replaces the mutable fields of a product in the given
// partition.
func (r *ProductRepository) UpdateFields(ctx context.Context, category repository.Category, id string, fields repository.ProductFields) (repository.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.partitions[category][id]
	if !exists {
		return repository.Product{}, repository.ErrNotFound
	}

	product.Name = fields.Name
	product.Price = fields.Price
	product.Description = fields.Description
	product.ImageURL = fields.ImageURL
	r.partitions[category][id] = product
	return product, nil
}

// Delete removes a product from the given partition.
func (r *ProductRepository) Delete(ctx context.Context, category repository.Category, id string) (repository.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.partitions[category][id]
	if !exists {
		return repository.Product{}, repository.ErrNotFound
	}
	delete(r.partitions[category], id)
	return product, nil
}
