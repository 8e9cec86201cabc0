package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultAPIURL = "https://onesignal.com/api/v1/notifications"

// OneSignalNotifier implements Notifier using the OneSignal REST API.
type OneSignalNotifier struct {
	logger  *zap.Logger
	appID   string
	apiKey  string
	siteURL string
	apiURL  string
	client  *http.Client
}

// NewOneSignalNotifier creates a new OneSignal notifier. siteURL is the
// storefront address the notification links back to.
func NewOneSignalNotifier(logger *zap.Logger, appID, apiKey, siteURL string) *OneSignalNotifier {
	return &OneSignalNotifier{
		logger:  logger,
		appID:   appID,
		apiKey:  apiKey,
		siteURL: siteURL,
		apiURL:  defaultAPIURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NotifyNewProduct pushes a "new product in the shop" notification to all
// subscribed users, with the product image as the notification icon.
func (n *OneSignalNotifier) NotifyNewProduct(ctx context.Context, name, imageURL string) error {
	payload := map[string]interface{}{
		"app_id":            n.appID,
		"included_segments": []string{"Subscribed Users"},
		"headings":          map[string]string{"en": "New product in the shop!"},
		"contents":          map[string]string{"en": fmt.Sprintf("%s is now available in the shop.", name)},
		"url":               n.siteURL,
		"chrome_web_icon":   imageURL,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("onesignal API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// OneSignal answers 200 even for some delivery problems and reports them
	// in an "errors" array.
	var result struct {
		ID     string          `json:"id"`
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Errors) > 0 && string(result.Errors) != "null" {
		return fmt.Errorf("onesignal API error: %s", string(result.Errors))
	}

	n.logger.Debug("push notification sent",
		zap.String("product_name", name),
		zap.String("notification_id", result.ID),
	)
	return nil
}
