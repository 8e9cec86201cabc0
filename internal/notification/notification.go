// Package notification sends "new product" push notifications to subscribed
// storefront users. Dispatch is fire and forget: the catalog never waits on
// or reacts to the outcome.
package notification

import (
	"context"

	"go.uber.org/zap"
)

// Notifier defines the interface for announcing a new product.
type Notifier interface {
	NotifyNewProduct(ctx context.Context, name, imageURL string) error
}

// NoOpNotifier is a no-op Notifier (for tests or when push is disabled).
type NoOpNotifier struct {
	logger *zap.Logger
}

// NewNoOpNotifier creates a no-op notifier.
func NewNoOpNotifier(logger *zap.Logger) *NoOpNotifier {
	return &NoOpNotifier{logger: logger}
}

// NotifyNewProduct does nothing, only logs.
func (n *NoOpNotifier) NotifyNewProduct(ctx context.Context, name, imageURL string) error {
	n.logger.Debug("no-op notifier: push not sent",
		zap.String("product_name", name),
	)
	return nil
}
