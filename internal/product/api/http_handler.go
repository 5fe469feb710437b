package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/invapp/inventory-api/internal/platform/logger"
	"github.com/invapp/inventory-api/internal/product/domain"
	"github.com/invapp/inventory-api/internal/product/repository"
	"github.com/invapp/inventory-api/internal/product/service"
	"github.com/invapp/inventory-api/internal/upload"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(ps service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/", h.ListProducts)
		productRoutes.GET("/:id", h.GetProduct)
		productRoutes.POST("", h.CreateProduct)
		productRoutes.PUT("/:id", h.UpdateProduct)
		productRoutes.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("ListProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("GetProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in domain.CreateProductInput
	in.Name = c.PostForm("name")
	in.Category = c.PostForm("category")
	in.Unit = c.PostForm("unit")
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}

	var ok bool
	if in.Quantity, ok = intField(c, "quantity"); !ok {
		return
	}
	if in.Price, ok = floatField(c, "price"); !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), in, imageFile(c))
	if err != nil {
		if errors.Is(err, service.ErrMissingRequiredFields) || errors.Is(err, upload.ErrInvalidImageType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("CreateProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var in domain.UpdateProductInput
	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		in.Category = &v
	}
	if v, ok := c.GetPostForm("unit"); ok {
		in.Unit = &v
	}

	var ok bool
	if in.Quantity, ok = intField(c, "quantity"); !ok {
		return
	}
	if in.Price, ok = floatField(c, "price"); !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), in, imageFile(c))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, upload.ErrInvalidImageType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("UpdateProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	product, err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("DeleteProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "product": product})
}

// imageFile returns the optional "image" multipart file, nil when absent.
func imageFile(c *gin.Context) *multipart.FileHeader {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return fh
}

// intField parses an optional integer form field. A present but
// non-numeric value answers the request with 400 and returns ok=false.
func intField(c *gin.Context, name string) (*int, bool) {
	s, present := c.GetPostForm(name)
	if !present {
		return nil, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return nil, false
	}
	return &v, true
}

func floatField(c *gin.Context, name string) (*float64, bool) {
	s, present := c.GetPostForm(name)
	if !present {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a number"})
		return nil, false
	}
	return &v, true
}
