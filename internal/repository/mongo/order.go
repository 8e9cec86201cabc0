package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mateuszroksana/my-backend/internal/repository"
)

const ordersCollection = "orders"

// orderDocument represents an order document in MongoDB.
type orderDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	CustomerName  string             `bson:"customerName"`
	Address       string             `bson:"address"`
	PaymentMethod string             `bson:"paymentMethod"`
	Products      []lineItemDocument `bson:"products"`
	TotalCost     string             `bson:"totalCost"`
	Status        string             `bson:"status"`
	Date          time.Time          `bson:"date"`
}

// lineItemDocument is a denormalized product snapshot inside an order.
// productId is stored as a plain string: it is an annotation, not a
// reference the store should resolve.
type lineItemDocument struct {
	ProductID string `bson:"productId"`
	Name      string `bson:"name"`
	Price     string `bson:"price"`
	Quantity  int    `bson:"quantity"`
}

// OrderRepository implements repository.OrderRepository using MongoDB.
type OrderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository creates a new MongoDB order repository.
func NewOrderRepository(client *mongo.Client, dbName string) *OrderRepository {
	return &OrderRepository{col: client.Database(dbName).Collection(ordersCollection)}
}

// Insert persists a new order and returns it with the assigned ObjectID.
func (r *OrderRepository) Insert(ctx context.Context, order repository.Order) (repository.Order, error) {
	doc := orderDocument{
		Email:         order.Email,
		CustomerName:  order.CustomerName,
		Address:       order.Address,
		PaymentMethod: order.PaymentMethod,
		Products:      toLineItemDocuments(order.Products),
		TotalCost:     order.TotalCost,
		Status:        string(order.Status),
		Date:          order.Date,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return repository.Order{}, err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return repository.Order{}, errors.New("unexpected inserted id type")
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

// ListAll returns every order in the collection.
func (r *OrderRepository) ListAll(ctx context.Context) ([]repository.Order, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]repository.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.toDomain())
	}
	return orders, nil
}

// UpdateStatus sets the order status atomically and returns the document
// after the update.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status repository.Status) (repository.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.Order{}, repository.ErrNotFound
	}

	update := bson.M{"$set": bson.M{"status": string(status)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.Order{}, repository.ErrNotFound
		}
		return repository.Order{}, err
	}
	return doc.toDomain(), nil
}

func toLineItemDocuments(items []repository.LineItem) []lineItemDocument {
	docs := make([]lineItemDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, lineItemDocument{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return docs
}

func (d orderDocument) toDomain() repository.Order {
	items := make([]repository.LineItem, 0, len(d.Products))
	for _, item := range d.Products {
		items = append(items, repository.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return repository.Order{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		CustomerName:  d.CustomerName,
		Address:       d.Address,
		PaymentMethod: d.PaymentMethod,
		Products:      items,
		TotalCost:     d.TotalCost,
		Status:        repository.Status(d.Status),
		Date:          d.Date,
	}
}
