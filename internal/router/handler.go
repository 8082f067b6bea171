package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pradeepit93/srienippagam-menu/pkg/catalog"
	"github.com/pradeepit93/srienippagam-menu/pkg/global"
	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// productView is a product with its resolved image URL.
type productView struct {
	models.Product
	ImageURL string `json:"image_url"`
}

type productDetail struct {
	productView
	Tiers []catalog.Tier `json:"tiers"`
}

func (s *Server) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"status":  "OK",
		"catalog": s.Catalog.Status(),
	}))
}

// loadedCatalog writes the error response and returns false while the
// catalog is loading or unavailable.
func (s *Server) loadedCatalog(c *gin.Context) (*catalog.Catalog, bool) {
	cat, err := s.Catalog.Catalog()
	if err == nil {
		return cat, true
	}

	if errors.Is(err, catalog.ErrCatalogLoading) {
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Catalog is loading", []global.ValidationError{
			{Field: "catalog", Message: "The menu is still loading, please retry shortly", Code: "catalog_loading"},
		}))
		return nil, false
	}

	c.Error(err)
	c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Catalog unavailable", []global.ValidationError{
		{Field: "catalog", Message: "The menu could not be loaded", Code: "data_unavailable"},
	}))
	return nil, false
}

func (s *Server) GetCategories(c *gin.Context) {
	cat, ok := s.loadedCatalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"categories": cat.Categories()}))
}

func (s *Server) GetSubCategories(c *gin.Context) {
	cat, ok := s.loadedCatalog(c)
	if !ok {
		return
	}

	category := c.Param("category")
	subs := cat.SubCategoriesFor(category)
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"category":       category,
		"sub_categories": subs,
		"show_facets":    catalog.ShowFacets(subs),
	}))
}

// GetProducts lists products filtered by category, subCategory and q.
func (s *Server) GetProducts(c *gin.Context) {
	cat, ok := s.loadedCatalog(c)
	if !ok {
		return
	}

	category := c.DefaultQuery("category", models.CategoryAll)
	subCategory := c.DefaultQuery("subCategory", models.CategoryAll)
	query := c.Query("q")
	if len(query) > 100 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid search query", []global.ValidationError{
			{Field: "q", Message: "Search query must be at most 100 characters", Code: "invalid_format"},
		}))
		return
	}

	products := cat.Filter(category, subCategory, query)
	urls := s.Images.ResolveAll(c.Request.Context(), products)

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{Product: p, ImageURL: urls[p.ID]})
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"products": views,
		"count":    len(views),
	}))
}

// productFromParam resolves the :id parameter against the catalog.
func (s *Server) productFromParam(c *gin.Context) (models.Product, bool) {
	cat, ok := s.loadedCatalog(c)
	if !ok {
		return models.Product{}, false
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product id", []global.ValidationError{
			{Field: "id", Message: "Product id must be a positive integer", Code: "invalid_format"},
		}))
		return models.Product{}, false
	}

	product, found := cat.Product(id)
	if !found {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "id", Message: "No product exists with this id", Code: "not_found"},
		}))
		return models.Product{}, false
	}
	return product, true
}

func (s *Server) GetProduct(c *gin.Context) {
	product, ok := s.productFromParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(productDetail{
		productView: productView{Product: product, ImageURL: s.Images.Resolve(c.Request.Context(), product)},
		Tiers:       catalog.Tiers(product),
	}))
}

// GetProductImage resolves one product image. Failures yield the placeholder.
func (s *Server) GetProductImage(c *gin.Context) {
	product, ok := s.productFromParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"id":        product.ID,
		"image_url": s.Images.Resolve(c.Request.Context(), product),
	}))
}

// ReloadCatalog retries the catalog fetch, bypassing any cached copy.
func (s *Server) ReloadCatalog(c *gin.Context) {
	if err := s.Catalog.Refresh(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Catalog reload failed", []global.ValidationError{
			{Field: "catalog", Message: "The menu could not be loaded", Code: "data_unavailable"},
		}))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(s.Catalog.Status()))
}
