package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/secondchance/marketplace/internal/application"
	"github.com/secondchance/marketplace/pkg/response"
	"github.com/secondchance/marketplace/pkg/validation"
)

// CartHandler serves the per-user cart. Ownership is enforced by the
// OwnCartOnly middleware before these run.
type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

type removeCartItemRequest struct {
	ItemID string `json:"item_id" binding:"required,uuid"`
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.Svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.Logger.WithError(err).Error("get cart failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load cart", nil)
		return
	}
	response.Success(c, http.StatusOK, cart, "cart", nil)
}

func (h *CartHandler) Add(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	cart, err := h.Svc.Add(c.Request.Context(), c.Param("userId"), req.ProductID)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("add cart item failed")
		response.Error[any](c, http.StatusInternalServerError, "could not add to cart", nil)
		return
	}
	response.Success(c, http.StatusOK, cart, "item added", nil)
}

func (h *CartHandler) Remove(c *gin.Context) {
	var req removeCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	cart, err := h.Svc.Remove(c.Request.Context(), c.Param("userId"), req.ItemID)
	if err != nil {
		if errors.Is(err, application.ErrCartItemNotFound) {
			response.Error[any](c, http.StatusNotFound, "cart item not found", nil)
			return
		}
		h.Logger.WithError(err).Error("remove cart item failed")
		response.Error[any](c, http.StatusInternalServerError, "could not remove from cart", nil)
		return
	}
	response.Success(c, http.StatusOK, cart, "item removed", nil)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), c.Param("userId")); err != nil {
		h.Logger.WithError(err).Error("clear cart failed")
		response.Error[any](c, http.StatusInternalServerError, "could not clear cart", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"cleared": true}, "cart cleared", nil)
}
