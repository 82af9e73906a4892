package handlers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"storefront/services"
)

type productRequest struct {
	ProductName string   `json:"productName"`
	ShoeType    string   `json:"shoeType"`
	Image       []string `json:"image"`
	Price       string   `json:"price"`
	Rating      *float64 `json:"rating"`
	Description string   `json:"description"`
	Color       []string `json:"color"`
	Size        []string `json:"size"`
}

func (r productRequest) input() services.ProductInput {
	return services.ProductInput{
		ProductName: r.ProductName,
		ShoeType:    r.ShoeType,
		Image:       r.Image,
		Price:       r.Price,
		Rating:      r.Rating,
		Description: r.Description,
		Color:       r.Color,
		Size:        r.Size,
	}
}

func CreateProductHandler(c *gin.Context, catalog *services.CatalogService) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	product, err := catalog.CreateProduct(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func GetProductListHandler(c *gin.Context, catalog *services.CatalogService) {
	products, err := catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func UpdateProductHandler(c *gin.Context, catalog *services.CatalogService) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	product, err := catalog.UpdateProduct(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProductHandler succeeds whether or not the product existed.
func DeleteProductHandler(c *gin.Context, catalog *services.CatalogService) {
	if err := catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
