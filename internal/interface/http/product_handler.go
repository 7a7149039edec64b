package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/secondchance/marketplace/internal/application"
	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/pkg/response"
	"github.com/secondchance/marketplace/pkg/validation"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string  `form:"name" binding:"required,min=2,max=120"`
	Description string  `form:"description" binding:"max=2000"`
	Category    string  `form:"category" binding:"required"`
	Price       float64 `form:"price" binding:"required,gt=0"`
	Phone       string  `form:"phone" binding:"required,min=6,max=20"`
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list products failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list products", nil)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get product failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load product", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

// Create accepts a multipart form with the listing fields plus an optional
// image part.
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if !slices.Contains(entity.Categories, req.Category) {
		response.Error[any](c, http.StatusBadRequest, "unknown category", gin.H{"allowed": entity.Categories})
		return
	}

	in := application.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		SellerID:    c.GetString("userID"),
		SellerPhone: req.Phone,
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "could not read image", nil)
			return
		}
		defer func() { _ = f.Close() }()
		in.Image = f
		in.ImageName = file.Filename
		in.ContentType = file.Header.Get("Content-Type")
	}

	p, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.Logger.WithError(err).Error("create product failed")
		response.Error[any](c, http.StatusInternalServerError, "could not create product", nil)
		return
	}
	response.Success(c, http.StatusCreated, p, "product created", nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	actor := &entity.User{ID: c.GetString("userID"), Role: c.GetString("userRole")}
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"), actor)
	switch {
	case errors.Is(err, application.ErrProductNotFound):
		response.Error[any](c, http.StatusNotFound, "product not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "not your listing", nil)
	case err != nil:
		h.Logger.WithError(err).Error("delete product failed")
		response.Error[any](c, http.StatusInternalServerError, "could not delete product", nil)
	default:
		response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "product deleted", nil)
	}
}

func (h *ProductHandler) Homepage(c *gin.Context) {
	sections, err := h.Svc.Homepage(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("homepage failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load homepage", nil)
		return
	}
	response.Success(c, http.StatusOK, sections, "homepage", nil)
}

func (h *ProductHandler) Search(c *gin.Context) {
	in := application.SearchInput{
		Query:        c.Query("q"),
		Category:     c.Query("category"),
		Alphabetical: c.Query("sort") == "alphabetical",
	}
	in.PriceMin, _ = strconv.ParseFloat(c.Query("price_min"), 64)
	in.PriceMax, _ = strconv.ParseFloat(c.Query("price_max"), 64)
	in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	in.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	res, err := h.Svc.Search(c.Request.Context(), in)
	if err != nil {
		h.Logger.WithError(err).Error("search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "search results", nil)
}

func (h *ProductHandler) Suggestions(c *gin.Context) {
	products, err := h.Svc.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Logger.WithError(err).Error("suggestions failed")
		response.Error[any](c, http.StatusInternalServerError, "suggestions failed", nil)
		return
	}
	response.Success(c, http.StatusOK, products, "suggestions", nil)
}

func (h *ProductHandler) Popular(c *gin.Context) {
	products, err := h.Svc.Popular(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("popular products failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load popular products", nil)
		return
	}
	response.Success(c, http.StatusOK, products, "popular products", nil)
}
