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

const usersCollection = "users"

// accountDocument represents an admin account document in MongoDB.
type accountDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
}

// AccountRepository implements repository.AccountRepository using MongoDB.
type AccountRepository struct {
	col *mongo.Collection
}

// NewAccountRepository creates a new MongoDB account repository.
// Creates a unique index on username at initialization so one username maps
// to exactly one account.
func NewAccountRepository(client *mongo.Client, dbName string) *AccountRepository {
	col := client.Database(dbName).Collection(usersCollection)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Index creation is idempotent; an already-existing index is fine.
	_, _ = col.Indexes().CreateOne(ctx, indexModel)

	return &AccountRepository{col: col}
}

// GetByUsername fetches an account by username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (repository.Account, error) {
	var doc accountDocument
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.Account{}, repository.ErrNotFound
		}
		return repository.Account{}, err
	}
	return repository.Account{
		ID:       doc.ID.Hex(),
		Username: doc.Username,
		Password: doc.Password,
	}, nil
}
