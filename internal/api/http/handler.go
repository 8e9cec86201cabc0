package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mateuszroksana/my-backend/internal/repository"
	"github.com/mateuszroksana/my-backend/internal/service"
)

// Handler contains the HTTP handlers of the storefront API. It depends on
// the service layer and knows nothing about the store or the push provider.
type Handler struct {
	catalog  *service.CatalogService
	orders   *service.OrderService
	accounts *service.AccountService
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	catalog *service.CatalogService,
	orders *service.OrderService,
	accounts *service.AccountService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		catalog:  catalog,
		orders:   orders,
		accounts: accounts,
		logger:   logger,
	}
}

// productJSON mirrors the document shape the frontend has always received
// from the mongo-backed API, _id included.
type productJSON struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

type lineItemJSON struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

type orderJSON struct {
	ID            string         `json:"_id"`
	Email         string         `json:"email"`
	CustomerName  string         `json:"customerName"`
	Address       string         `json:"address"`
	PaymentMethod string         `json:"paymentMethod"`
	Products      []lineItemJSON `json:"products"`
	TotalCost     string         `json:"totalCost"`
	Status        string         `json:"status"`
	Date          time.Time      `json:"date"`
}

type productRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

type orderRequest struct {
	Email         string         `json:"email"`
	CustomerName  string         `json:"customerName"`
	Address       string         `json:"address"`
	PaymentMethod string         `json:"paymentMethod"`
	Products      []lineItemJSON `json:"products"`
	TotalCost     string         `json:"totalCost"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ListTeas handles GET /api/teas.
func (h *Handler) ListTeas(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, repository.CategoryTeas)
}

// ListHerbalTeas handles GET /api/herbal-teas.
func (h *Handler) ListHerbalTeas(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, repository.CategoryHerbalTeas)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request, category repository.Category) {
	products, err := h.catalog.ListByCategory(r.Context(), category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeMessage(w, http.StatusNotFound, "no products in the database")
			return
		}
		h.logger.Error("failed to list products", zap.String("category", string(category)), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProductJSON(p))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// GetProduct handles GET /api/admin/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, id string) {
	product, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to get product", zap.String("product_id", id), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "failed to load product data")
		return
	}
	h.writeJSON(w, http.StatusOK, toProductJSON(product))
}

// CreateProduct handles POST /api/admin/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := h.catalog.Create(r.Context(), service.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.writeMessage(w, http.StatusBadRequest, "missing required data")
			return
		}
		h.logger.Error("failed to create product", zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "product added successfully",
		"product": toProductJSON(created),
	})
}

// UpdateProduct handles PUT /api/admin/products/{id}. The category in the
// body selects the partition the update targets.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request, id string) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	_, err := h.catalog.Update(r.Context(), id, req.Category, repository.ProductFields{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	h.writeMessage(w, http.StatusOK, "product updated successfully")
}

// DeleteProduct handles DELETE /api/admin/products/{id}. Like the update,
// the category comes from the request body.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	_, err := h.catalog.Delete(r.Context(), id, req.Category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to delete product", zap.String("product_id", id), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.writeMessage(w, http.StatusOK, "product deleted successfully")
}

// SubmitOrder handles POST /api/orders.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	items := make([]repository.LineItem, 0, len(req.Products))
	for _, item := range req.Products {
		items = append(items, repository.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	_, err := h.orders.Submit(r.Context(), service.SubmitOrderInput{
		Email:         req.Email,
		CustomerName:  req.CustomerName,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Products:      items,
		TotalCost:     req.TotalCost,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.writeMessage(w, http.StatusBadRequest, "missing required order data")
			return
		}
		h.logger.Error("failed to save order", zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "failed to save order")
		return
	}

	h.writeMessage(w, http.StatusCreated, "order saved successfully")
}

// ListOrders handles GET /api/orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	out := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderJSON(o))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// FulfillOrder handles PUT /api/orders/{id}/complete.
func (h *Handler) FulfillOrder(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.orders.MarkFulfilled(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeMessage(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("failed to fulfill order", zap.String("order_id", id), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "failed to update order")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "order marked as fulfilled",
		"order":   toOrderJSON(order),
	})
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	account, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.writeMessage(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "server error during login")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message":  "logged in successfully",
		"username": account.Username,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeMessage(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"message": message})
}

func toProductJSON(p repository.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Category:    string(p.Category),
	}
}

func toOrderJSON(o repository.Order) orderJSON {
	items := make([]lineItemJSON, 0, len(o.Products))
	for _, item := range o.Products {
		items = append(items, lineItemJSON{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return orderJSON{
		ID:            o.ID,
		Email:         o.Email,
		CustomerName:  o.CustomerName,
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		Products:      items,
		TotalCost:     o.TotalCost,
		Status:        string(o.Status),
		Date:          o.Date,
	}
}
