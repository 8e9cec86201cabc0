package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mateuszroksana/my-backend/internal/repository"
	"github.com/mateuszroksana/my-backend/internal/repository/memory"
)

type notifyCall struct {
	name     string
	imageURL string
}

// notifierRecorder implements notification.Notifier for tests. Calls are
// pushed onto a channel so tests can wait for the detached dispatch.
type notifierRecorder struct {
	mu    sync.Mutex
	calls chan notifyCall
	err   error
}

func newNotifierRecorder() *notifierRecorder {
	return &notifierRecorder{calls: make(chan notifyCall, 8)}
}

func (n *notifierRecorder) NotifyNewProduct(ctx context.Context, name, imageURL string) error {
	n.mu.Lock()
	err := n.err
	n.mu.Unlock()
	n.calls <- notifyCall{name: name, imageURL: imageURL}
	return err
}

func (n *notifierRecorder) waitForCall(t *testing.T) notifyCall {
	t.Helper()
	select {
	case call := <-n.calls:
		return call
	case <-time.After(time.Second):
		t.Fatal("notification was not dispatched")
		return notifyCall{}
	}
}

func validCreateInput() CreateProductInput {
	return CreateProductInput{
		Name:        "Green Tea",
		Price:       "10",
		Description: "Fresh",
		ImageURL:    "http://x/img.png",
		Category:    "teas",
	}
}

func TestCatalogService_Create_PartitionRouting(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name              string
		category          string
		expectedPartition repository.Category
		otherPartition    repository.Category
	}{
		{
			name:              "herbal-teas routes to the herbal partition",
			category:          "herbal-teas",
			expectedPartition: repository.CategoryHerbalTeas,
			otherPartition:    repository.CategoryTeas,
		},
		{
			name:              "teas routes to the plain partition",
			category:          "teas",
			expectedPartition: repository.CategoryTeas,
			otherPartition:    repository.CategoryHerbalTeas,
		},
		{
			name:              "unrecognized category defaults to the plain partition",
			category:          "green-teas",
			expectedPartition: repository.CategoryTeas,
			otherPartition:    repository.CategoryHerbalTeas,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewProductRepository()
			notifier := newNotifierRecorder()
			svc := NewCatalogService(zap.NewNop(), repo, notifier, time.Second)

			input := validCreateInput()
			input.Category = tt.category

			created, err := svc.Create(ctx, input)
			require.NoError(t, err)
			require.NotEmpty(t, created.ID)
			require.Equal(t, tt.expectedPartition, created.Category)

			// Present in the selected partition, absent from the other.
			_, err = repo.GetByID(ctx, tt.expectedPartition, created.ID)
			require.NoError(t, err)
			_, err = repo.GetByID(ctx, tt.otherPartition, created.ID)
			require.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestCatalogService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateProductInput)
	}{
		{"missing name", func(in *CreateProductInput) { in.Name = "" }},
		{"missing price", func(in *CreateProductInput) { in.Price = "" }},
		{"missing description", func(in *CreateProductInput) { in.Description = "" }},
		{"missing imageUrl", func(in *CreateProductInput) { in.ImageURL = "" }},
		{"missing category", func(in *CreateProductInput) { in.Category = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewProductRepository()
			notifier := newNotifierRecorder()
			svc := NewCatalogService(zap.NewNop(), repo, notifier, time.Second)

			input := validCreateInput()
			tt.mutate(&input)

			_, err := svc.Create(ctx, input)
			require.ErrorIs(t, err, ErrValidation)

			// Nothing persisted in either partition, no notification sent.
			for _, cat := range []repository.Category{repository.CategoryTeas, repository.CategoryHerbalTeas} {
				products, listErr := repo.ListByCategory(ctx, cat)
				require.NoError(t, listErr)
				require.Empty(t, products)
			}
			select {
			case <-notifier.calls:
				t.Fatal("notification dispatched for rejected input")
			default:
			}
		})
	}
}

func TestCatalogService_Create_NotificationDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("notification carries product name and image", func(t *testing.T) {
		repo := memory.NewProductRepository()
		notifier := newNotifierRecorder()
		svc := NewCatalogService(zap.NewNop(), repo, notifier, time.Second)

		_, err := svc.Create(ctx, validCreateInput())
		require.NoError(t, err)

		call := notifier.waitForCall(t)
		require.Equal(t, "Green Tea", call.name)
		require.Equal(t, "http://x/img.png", call.imageURL)
	})

	t.Run("notification failure does not fail the creation", func(t *testing.T) {
		repo := memory.NewProductRepository()
		notifier := newNotifierRecorder()
		notifier.err = errors.New("push provider down")
		svc := NewCatalogService(zap.NewNop(), repo, notifier, time.Second)

		created, err := svc.Create(ctx, validCreateInput())
		require.NoError(t, err)
		notifier.waitForCall(t)

		// The product stayed persisted despite the failed push.
		_, err = repo.GetByID(ctx, repository.CategoryTeas, created.ID)
		require.NoError(t, err)
	})
}

func TestCatalogService_ListByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("empty partition reports not found", func(t *testing.T) {
		repo := memory.NewProductRepository()
		svc := NewCatalogService(zap.NewNop(), repo, newNotifierRecorder(), time.Second)

		_, err := svc.ListByCategory(ctx, repository.CategoryTeas)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("returns only the requested partition", func(t *testing.T) {
		repo := memory.NewProductRepository()
		notifier := newNotifierRecorder()
		svc := NewCatalogService(zap.NewNop(), repo, notifier, time.Second)

		plain := validCreateInput()
		_, err := svc.Create(ctx, plain)
		require.NoError(t, err)

		herbal := validCreateInput()
		herbal.Name = "Chamomile"
		herbal.Category = "herbal-teas"
		_, err = svc.Create(ctx, herbal)
		require.NoError(t, err)

		teas, err := svc.ListByCategory(ctx, repository.CategoryTeas)
		require.NoError(t, err)
		require.Len(t, teas, 1)
		require.Equal(t, "Green Tea", teas[0].Name)

		herbals, err := svc.ListByCategory(ctx, repository.CategoryHerbalTeas)
		require.NoError(t, err)
		require.Len(t, herbals, 1)
		require.Equal(t, "Chamomile", herbals[0].Name)
	})
}

func TestCatalogService_Update_PartitionMismatch(t *testing.T) {
	ctx := context.Background()

	repo := memory.NewProductRepository()
	notifier := newNotifierRecorder()
	svc := NewCatalogService(zap.NewNop(), repo, notifier, time.Second)

	created, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	fields := repository.ProductFields{Name: "Sencha", Price: "12", Description: "Japanese", ImageURL: "http://x/sencha.png"}

	// The supplied category picks the partition, so a mismatched category
	// answers not found even though the id exists in the other partition.
	_, err = svc.Update(ctx, created.ID, "herbal-teas", fields)
	require.ErrorIs(t, err, repository.ErrNotFound)

	updated, err := svc.Update(ctx, created.ID, "teas", fields)
	require.NoError(t, err)
	require.Equal(t, "Sencha", updated.Name)
	require.Equal(t, "12", updated.Price)
	// The partition never changes on update.
	require.Equal(t, repository.CategoryTeas, updated.Category)
}

func TestCatalogService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := memory.NewProductRepository()
	notifier := newNotifierRecorder()
	svc := NewCatalogService(zap.NewNop(), repo, notifier, time.Second)

	created, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	t.Run("mismatched category answers not found", func(t *testing.T) {
		_, err := svc.Delete(ctx, created.ID, "herbal-teas")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("matching category removes and returns the product", func(t *testing.T) {
		removed, err := svc.Delete(ctx, created.ID, "teas")
		require.NoError(t, err)
		require.Equal(t, created.ID, removed.ID)

		_, err = svc.GetByID(ctx, created.ID)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestCatalogService_GetByID_ProbesBothPartitions(t *testing.T) {
	ctx := context.Background()

	repo := memory.NewProductRepository()
	notifier := newNotifierRecorder()
	svc := NewCatalogService(zap.NewNop(), repo, notifier, time.Second)

	herbal := validCreateInput()
	herbal.Name = "Mint"
	herbal.Category = "herbal-teas"
	created, err := svc.Create(ctx, herbal)
	require.NoError(t, err)

	// No category hint needed: the herbal partition is probed second.
	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Mint", found.Name)

	_, err = svc.GetByID(ctx, "missing-id")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
