package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/secondchance/marketplace/internal/application"
	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/pkg/response"
	"github.com/secondchance/marketplace/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type orderItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	SellerID    string  `json:"seller_id" binding:"required,uuid"`
	SellerPhone string  `json:"seller_phone" binding:"required"`
}

type createOrderRequest struct {
	Products   []orderItemRequest `json:"products" binding:"required,min=1,dive"`
	TotalPrice float64            `json:"total_price" binding:"required,gt=0"`
}

// Create records an order from the items the client sends. The rows are
// snapshots; nothing references live products afterwards.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	items := make([]entity.OrderItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, entity.OrderItem{
			Name:        p.Name,
			Price:       p.Price,
			ImageURL:    p.ImageURL,
			SellerID:    p.SellerID,
			SellerPhone: p.SellerPhone,
		})
	}

	order, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), items, req.TotalPrice)
	if err != nil {
		if errors.Is(err, application.ErrNoOrderItems) || errors.Is(err, application.ErrIncompleteItems) {
			response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("create order failed")
		response.Error[any](c, http.StatusInternalServerError, "could not create order", nil)
		return
	}
	response.Success(c, http.StatusCreated, order, "order created", nil)
}

// Checkout builds the order from the server-held cart and clears the cart
// in the same transaction.
func (h *OrderHandler) Checkout(c *gin.Context) {
	order, err := h.Svc.Checkout(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, application.ErrEmptyCart) {
			response.Error[any](c, http.StatusBadRequest, "cart is empty", nil)
			return
		}
		h.Logger.WithError(err).Error("checkout failed")
		response.Error[any](c, http.StatusInternalServerError, "checkout failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, order, "order placed", nil)
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.Svc.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.Logger.WithError(err).Error("list orders failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list orders", nil)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}
