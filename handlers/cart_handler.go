package handlers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"storefront/services"
)

type cartItemRequest struct {
	UserID      string `json:"userId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func AddToCartHandler(c *gin.Context, cart *services.CartService) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	item, err := cart.AddOrIncrement(c.Request.Context(), services.CartItemInput{
		UserID:      req.UserID,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func GetCartHandler(c *gin.Context, cart *services.CartService) {
	items, err := cart.ListCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func UpdateCartItemQuantityHandler(c *gin.Context, cart *services.CartService) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	item, err := cart.UpdateQuantity(c.Request.Context(), c.Param("userId"), c.Param("productId"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func DeleteCartItemHandler(c *gin.Context, cart *services.CartService) {
	if err := cart.RemoveItem(c.Request.Context(), c.Param("userId"), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted successfully"})
}
