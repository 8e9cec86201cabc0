package repository

import "context"

// Category identifies the storage partition of a product. Plain teas and
// herbal teas live in separate collections with identical schemas.
type Category string

const (
	CategoryTeas       Category = "teas"
	CategoryHerbalTeas Category = "herbal-teas"
)

// PartitionFor selects the storage partition for a category tag.
// "herbal-teas" routes to the herbal partition; every other tag, including
// an unrecognized one, falls back to plain teas.
func PartitionFor(tag string) Category {
	if tag == string(CategoryHerbalTeas) {
		return CategoryHerbalTeas
	}
	return CategoryTeas
}

// Product represents a catalog item. Price is an opaque display string,
// never parsed as a number.
type Product struct {
	ID          string
	Name        string
	Price       string
	Description string
	ImageURL    string
	Category    Category
}

// ProductFields contains the mutable fields of a product. Category is
// deliberately absent: an update never moves a product between partitions.
type ProductFields struct {
	Name        string
	Price       string
	Description string
	ImageURL    string
}

// ProductRepository defines storage access for the two product partitions.
// Every operation targets exactly one partition; the caller picks it.
type ProductRepository interface {
	// ListByCategory returns all products stored in the given partition.
	ListByCategory(ctx context.Context, category Category) ([]Product, error)

	// GetByID fetches a product from the given partition.
	// Returns ErrNotFound if the partition does not hold the id.
	GetByID(ctx context.Context, category Category, id string) (Product, error)

	// Insert persists a new product in the given partition and returns it
	// with the store-assigned id.
	Insert(ctx context.Context, category Category, product Product) (Product, error)

	// UpdateFields replaces the mutable fields of a product in the given
	// partition and returns the updated document.
	// Returns ErrNotFound if the partition does not hold the id.
	UpdateFields(ctx context.Context, category Category, id string, fields ProductFields) (Product, error)

	// Delete removes a product from the given partition and returns the
	// removed document.
	// Returns ErrNotFound if the partition does not hold the id.
	Delete(ctx context.Context, category Category, id string) (Product, error)
}
