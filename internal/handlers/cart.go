package handlers

import (
	"errors"
	"net/http"

	"fastfeast_back_end/internal/models"
	"fastfeast_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Carts   store.CartStore
	Catalog store.CatalogStore
}

// Add ajoute un plat au panier. Une ligne existante pour le même plat voit sa
// quantité incrémentée, jamais dupliquée.
func (h *CartHandler) Add(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		FoodItemID string `json:"foodItemId" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// Le plat doit exister et être disponible
	item, err := h.Catalog.GetFoodItem(c.Request.Context(), input.FoodItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plat introuvable"})
		return
	}
	if !item.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plat indisponible"})
		return
	}

	cartItem, err := h.Carts.Add(c.Request.Context(), userID, input.FoodItemID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout panier"})
		return
	}

	c.JSON(http.StatusOK, cartItem)
}

// List retourne le panier, chaque ligne enrichie avec le plat référencé.
func (h *CartHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := h.Carts.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		line := models.CartLine{CartItem: item}
		if f, err := h.Catalog.GetFoodItem(c.Request.Context(), item.FoodItemID); err == nil {
			line.FoodItem = f
		}
		lines = append(lines, line)
	}

	c.JSON(http.StatusOK, lines)
}

// UpdateQuantity remplace la quantité d'une ligne. La validation (> 0) se
// fait ici, à la frontière : le store reste volontairement laxiste.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var input struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	item, err := h.Carts.UpdateQuantity(c.Request.Context(), c.Param("id"), input.Quantity)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Remove supprime une ligne. Idempotent : une ligne absente donne le même ack.
func (h *CartHandler) Remove(c *gin.Context) {
	if err := h.Carts.Remove(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plat supprimé du panier"})
}

// Clear vide tout le panier de l'utilisateur. Idempotent.
func (h *CartHandler) Clear(c *gin.Context) {
	userID := c.GetString("user_id")
	if err := h.Carts.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
