package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/secondchance/marketplace/internal/application"
	"github.com/secondchance/marketplace/pkg/response"
)

// AdminHandler backs the management dashboard; every route is behind the
// AdminOnly middleware.
type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.Svc.Dashboard(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("dashboard stats failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load dashboard", nil)
		return
	}
	response.Success(c, http.StatusOK, stats, "dashboard", nil)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("admin list users failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list users", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserViews(users), "users", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id"))
	h.finishDelete(c, err, application.ErrUserNotFound, "user")
}

func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("admin list products failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list products", nil)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	err := h.Svc.DeleteProduct(c.Request.Context(), c.Param("id"))
	h.finishDelete(c, err, application.ErrProductNotFound, "product")
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.Svc.ListOrders(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("admin list orders failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list orders", nil)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}

func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	err := h.Svc.DeleteOrder(c.Request.Context(), c.Param("id"))
	h.finishDelete(c, err, application.ErrOrderNotFound, "order")
}

func (h *AdminHandler) finishDelete(c *gin.Context, err, notFound error, what string) {
	switch {
	case errors.Is(err, notFound):
		response.Error[any](c, http.StatusNotFound, what+" not found", nil)
	case err != nil:
		h.Logger.WithError(err).Error("admin delete " + what + " failed")
		response.Error[any](c, http.StatusInternalServerError, "could not delete "+what, nil)
	default:
		response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, what+" deleted", nil)
	}
}
