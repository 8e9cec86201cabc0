//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/mateuszroksana/my-backend/internal/repository"
	mongorepo "github.com/mateuszroksana/my-backend/internal/repository/mongo"
)

func TestStorefront_E2E_MongoRepositories(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 1) Start a MongoDB container. No auth, faster and reliable enough here.
	mongoC, err := mongodb.RunContainer(ctx,
		tc.WithImage("mongo:6"),
	)
	require.NoError(t, err)
	defer func() { require.NoError(t, mongoC.Terminate(ctx)) }()

	mongoURI, err := mongoC.ConnectionString(ctx)
	require.NoError(t, err)

	// 2) Connect and wait for readiness (ping with retry).
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(ctx) }()

	var pingErr error
	for i := 0; i < 20; i++ {
		pingErr = client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		if pingErr == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	require.NoError(t, pingErr, "MongoDB did not become ready in time")

	dbName := "teashop_e2e"

	products := mongorepo.NewProductRepository(client, dbName)
	orders := mongorepo.NewOrderRepository(client, dbName)

	// 3) Products: one insert per partition, each visible only in its own
	// collection.
	green, err := products.Insert(ctx, repository.CategoryTeas, repository.Product{
		Name:        "Green Tea",
		Price:       "9.99",
		Description: "Sencha",
		ImageURL:    "https://img.example/green.jpg",
		Category:    repository.CategoryTeas,
	})
	require.NoError(t, err)
	require.NotEmpty(t, green.ID)

	mint, err := products.Insert(ctx, repository.CategoryHerbalTeas, repository.Product{
		Name:     "Mint",
		Price:    "7.49",
		Category: repository.CategoryHerbalTeas,
	})
	require.NoError(t, err)

	teas, err := products.ListByCategory(ctx, repository.CategoryTeas)
	require.NoError(t, err)
	require.Len(t, teas, 1)
	require.Equal(t, "Green Tea", teas[0].Name)

	herbal, err := products.ListByCategory(ctx, repository.CategoryHerbalTeas)
	require.NoError(t, err)
	require.Len(t, herbal, 1)
	require.Equal(t, "Mint", herbal[0].Name)

	// Lookup in the wrong partition must miss.
	_, err = products.GetByID(ctx, repository.CategoryHerbalTeas, green.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	// 4) Update and delete round-trip.
	updated, err := products.UpdateFields(ctx, repository.CategoryTeas, green.ID, repository.ProductFields{
		Name:        "Green Tea",
		Price:       "11.99",
		Description: "Sencha, new harvest",
		ImageURL:    "https://img.example/green.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, "11.99", updated.Price)

	_, err = products.Delete(ctx, repository.CategoryHerbalTeas, mint.ID)
	require.NoError(t, err)
	_, err = products.GetByID(ctx, repository.CategoryHerbalTeas, mint.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	// A malformed hex id behaves like a missing document.
	_, err = products.GetByID(ctx, repository.CategoryTeas, "not-a-hex-id")
	require.ErrorIs(t, err, repository.ErrNotFound)

	// 5) Orders: insert, list, flip status.
	order, err := orders.Insert(ctx, repository.Order{
		Email:         "jan@example.com",
		CustomerName:  "Jan Kowalski",
		Address:       "Herbaciana 5, Warszawa",
		PaymentMethod: "card",
		TotalCost:     "23.98",
		Products: []repository.LineItem{
			{ProductID: green.ID, Name: "Green Tea", Price: "11.99", Quantity: 2},
		},
		Status: repository.StatusPending,
		Date:   time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)

	listed, err := orders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, repository.StatusPending, listed[0].Status)
	require.Len(t, listed[0].Products, 1)
	require.Equal(t, green.ID, listed[0].Products[0].ProductID)

	fulfilled, err := orders.UpdateStatus(ctx, order.ID, repository.StatusFulfilled)
	require.NoError(t, err)
	require.Equal(t, repository.StatusFulfilled, fulfilled.Status)

	// Fulfilling again keeps the order fulfilled.
	again, err := orders.UpdateStatus(ctx, order.ID, repository.StatusFulfilled)
	require.NoError(t, err)
	require.Equal(t, repository.StatusFulfilled, again.Status)

	_, err = orders.UpdateStatus(ctx, "64b000000000000000000000", repository.StatusFulfilled)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
