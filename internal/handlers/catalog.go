package handlers

import (
	"errors"
	"log"
	"net/http"

	"fastfeast_back_end/internal/search"
	"fastfeast_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Catalog store.CatalogStore
	Index   *search.FoodIndex
}

// ListRestaurants retourne tous les restaurants, filtrés par ?cuisine= si fourni.
func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.Catalog.ListRestaurants(c.Request.Context(), c.Query("cuisine"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération restaurants"})
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *CatalogHandler) GetRestaurant(c *gin.Context) {
	r, err := h.Catalog.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération restaurant"})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *CatalogHandler) GetMenu(c *gin.Context) {
	items, err := h.Catalog.ListMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// SearchFoodItems cherche dans Elasticsearch, avec repli sur le store quand
// l'index est absent ou en erreur.
func (h *CatalogHandler) SearchFoodItems(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	if h.Index.Enabled() {
		items, err := h.Index.Search(c.Request.Context(), query)
		if err == nil {
			c.JSON(http.StatusOK, items)
			return
		}
		log.Println("⚠️ Recherche Elastic en erreur, repli sur le store:", err)
	}

	items, err := h.Catalog.SearchFoodItems(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	items, err := h.Catalog.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération plats"})
		return
	}
	c.JSON(http.StatusOK, items)
}
