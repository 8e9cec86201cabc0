package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mateuszroksana/my-backend/internal/repository"
)

// OrderService contains the business logic for customer orders.
type OrderService struct {
	logger *zap.Logger
	repo   repository.OrderRepository
	now    func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(logger *zap.Logger, repo repository.OrderRepository) *OrderService {
	return &OrderService{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
}

// SubmitOrderInput contains the input for submitting an order. The line
// items are snapshots supplied by the caller; their product ids are not
// checked against the catalog and the total is not recomputed.
type SubmitOrderInput struct {
	Email         string
	CustomerName  string
	Address       string
	PaymentMethod string
	Products      []repository.LineItem
	TotalCost     string
}

// Submit validates the required order fields and persists the order with
// status pending and the submission timestamp.
func (s *OrderService) Submit(ctx context.Context, input SubmitOrderInput) (repository.Order, error) {
	if input.Email == "" {
		return repository.Order{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if input.CustomerName == "" {
		return repository.Order{}, fmt.Errorf("%w: customerName is required", ErrValidation)
	}
	if input.Address == "" {
		return repository.Order{}, fmt.Errorf("%w: address is required", ErrValidation)
	}
	if len(input.Products) == 0 {
		return repository.Order{}, fmt.Errorf("%w: products must not be empty", ErrValidation)
	}

	order := repository.Order{
		Email:         input.Email,
		CustomerName:  input.CustomerName,
		Address:       input.Address,
		PaymentMethod: input.PaymentMethod,
		Products:      input.Products,
		TotalCost:     input.TotalCost,
		Status:        repository.StatusPending,
		Date:          s.now(),
	}

	created, err := s.repo.Insert(ctx, order)
	if err != nil {
		return repository.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("order submitted",
		zap.String("order_id", created.ID),
		zap.Int("line_items", len(created.Products)),
	)
	return created, nil
}

// ListAll returns every order, no filtering, no pagination.
func (s *OrderService) ListAll(ctx context.Context) ([]repository.Order, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// MarkFulfilled transitions an order to fulfilled. The transition is
// unconditional and idempotent: fulfilling an already-fulfilled order
// re-applies the same status and succeeds.
func (s *OrderService) MarkFulfilled(ctx context.Context, id string) (repository.Order, error) {
	order, err := s.repo.UpdateStatus(ctx, id, repository.StatusFulfilled)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Order{}, err
		}
		return repository.Order{}, fmt.Errorf("failed to fulfill order %s: %w", id, err)
	}

	s.logger.Info("order fulfilled", zap.String("order_id", id))
	return order, nil
}
