package handlers

import (
	"errors"
	"log"
	"net/http"

	"fastfeast_back_end/internal/models"
	"fastfeast_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Orders store.OrderStore
	Carts  store.CartStore
	Locks  *store.KeyedMutex
}

// Create enregistre la commande puis vide le panier. Les deux étapes ne sont
// pas atomiques entre stores ; le verrou par utilisateur les sérialise face
// aux checkouts concurrents. Le total fourni par le client est persisté tel
// quel : la vérification serveur a lieu à la création du paiement.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		RestaurantID          string             `json:"restaurantId" binding:"required"`
		Items                 []models.OrderItem `json:"items" binding:"required"`
		TotalAmount           float64            `json:"totalAmount"`
		DeliveryAddress       string             `json:"deliveryAddress" binding:"required"`
		DeliveryFee           float64            `json:"deliveryFee"`
		EstimatedDeliveryTime string             `json:"estimatedDeliveryTime"`
		SpecialInstructions   string             `json:"specialInstructions"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Commande sans lignes"})
		return
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
			return
		}
	}

	order := models.Order{
		UserID:                userID,
		RestaurantID:          input.RestaurantID,
		Items:                 input.Items,
		TotalAmount:           input.TotalAmount,
		DeliveryAddress:       input.DeliveryAddress,
		DeliveryFee:           input.DeliveryFee,
		EstimatedDeliveryTime: input.EstimatedDeliveryTime,
		SpecialInstructions:   input.SpecialInstructions,
	}

	unlock := h.Locks.Lock("checkout:" + userID)
	defer unlock()

	if err := h.Orders.Create(c.Request.Context(), &order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// Panier vidé après coup : si ça échoue, la commande existe quand même
	if err := h.Carts.Clear(c.Request.Context(), userID); err != nil {
		log.Printf("⚠️ Commande %s créée mais panier non vidé: %v", order.ID, err)
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	orders, err := h.Orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get retourne une commande. La commande d'un autre utilisateur est
// introuvable, pas interdite : on ne révèle pas son existence.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := h.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus fait avancer une commande dans son cycle de vie (preparing,
// out_for_delivery, delivered, cancelled), sous contrôle de la table de
// transitions.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !store.IsValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		return
	}

	order, err := h.Orders.GetByID(c.Request.Context(), orderID)
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if err := h.Orders.UpdateStatus(c.Request.Context(), orderID, input.Status); err != nil {
		if errors.Is(err, store.ErrInvalidTransition) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Transition interdite",
				"from":  order.Status,
				"to":    input.Status,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}

	order, _ = h.Orders.GetByID(c.Request.Context(), orderID)
	c.JSON(http.StatusOK, order)
}
