package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mateuszroksana/my-backend/internal/repository"
)

// productDocument represents a product document in MongoDB. Field names
// match the collection schema the frontend already reads (camelCase).
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       string             `bson:"price"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"imageUrl"`
	Category    string             `bson:"category"`
}

// ProductRepository implements repository.ProductRepository using MongoDB.
// Each category partition is its own collection, named after the category.
type ProductRepository struct {
	db *mongo.Database
}

// NewProductRepository creates a new MongoDB product repository.
func NewProductRepository(client *mongo.Client, dbName string) *ProductRepository {
	return &ProductRepository{db: client.Database(dbName)}
}

func (r *ProductRepository) col(category repository.Category) *mongo.Collection {
	return r.db.Collection(string(category))
}

// ListByCategory returns all products stored in the partition's collection.
func (r *ProductRepository) ListByCategory(ctx context.Context, category repository.Category) ([]repository.Product, error) {
	cursor, err := r.col(category).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]repository.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toDomain(category))
	}
	return products, nil
}

// GetByID fetches a product from the partition's collection.
func (r *ProductRepository) GetByID(ctx context.Context, category repository.Category, id string) (repository.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot match any document.
		return repository.Product{}, repository.ErrNotFound
	}

	var doc productDocument
	if err := r.col(category).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.Product{}, repository.ErrNotFound
		}
		return repository.Product{}, err
	}
	return doc.toDomain(category), nil
}

// Insert persists a new product and returns it with the assigned ObjectID.
func (r *ProductRepository) Insert(ctx context.Context, category repository.Category, product repository.Product) (repository.Product, error) {
	doc := productDocument{
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Category:    string(category),
	}

	res, err := r.col(category).InsertOne(ctx, doc)
	if err != nil {
		return repository.Product{}, err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return repository.Product{}, errors.New("unexpected inserted id type")
	}
	doc.ID = oid
	return doc.toDomain(category), nil
}

// UpdateFields replaces the mutable fields of a product atomically and
// returns the document after the update.
func (r *ProductRepository) UpdateFields(ctx context.Context, category repository.Category, id string, fields repository.ProductFields) (repository.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.Product{}, repository.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        fields.Name,
		"price":       fields.Price,
		"description": fields.Description,
		"imageUrl":    fields.ImageURL,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDocument
	if err := r.col(category).FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.Product{}, repository.ErrNotFound
		}
		return repository.Product{}, err
	}
	return doc.toDomain(category), nil
}

// Delete removes a product from the partition's collection and returns the
// removed document.
func (r *ProductRepository) Delete(ctx context.Context, category repository.Category, id string) (repository.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.Product{}, repository.ErrNotFound
	}

	var doc productDocument
	if err := r.col(category).FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.Product{}, repository.ErrNotFound
		}
		return repository.Product{}, err
	}
	return doc.toDomain(category), nil
}

func (d productDocument) toDomain(category repository.Category) repository.Product {
	return repository.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Category:    category,
	}
}
