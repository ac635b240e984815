package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
	"lotusaroma/storefront-service/internal/app/storefront/service"
)

type ProductHandler struct {
	catalog service.CatalogServiceInterface
}

func NewProductHandler(catalog service.CatalogServiceInterface) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List - GET /api/products?search=<q>
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.SearchProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondInternal(c, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) NewArrivals(c *gin.Context) {
	products, err := h.catalog.GetNewArrivals(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "Failed to fetch new arrivals")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Bestsellers(c *gin.Context) {
	products, err := h.catalog.GetBestsellers(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "Failed to fetch bestsellers")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.productError(c, err, "Failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Reviews(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	reviews, err := h.catalog.GetReviews(c.Request.Context(), id)
	if err != nil {
		respondInternal(c, err, "Failed to fetch reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview - POST /api/products/:id/reviews.
// Отсутствие товара проверяется раньше валидации тела.
func (h *ProductHandler) CreateReview(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, err := h.catalog.GetProduct(ctx, id); err != nil {
			h.productError(c, err, "Failed to create review")
			return
		}
		respondFieldErrors(c, "Invalid review data", malformedBody)
		return
	}

	review, err := h.catalog.CreateReview(ctx, id, &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			respondFieldErrors(c, "Invalid review data", verr.Fields)
			return
		}
		h.productError(c, err, "Failed to create review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ProductHandler) productError(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrProductNotFound) {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}
	respondInternal(c, err, message)
}
