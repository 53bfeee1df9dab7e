package handlers

import (
	"log"
	"net/http"
	"time"

	"fastfeast_back_end/internal/middleware"
	"fastfeast_back_end/internal/models"
	"fastfeast_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var trackUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Le CORS est géré au niveau du routeur, pas ici
	CheckOrigin: func(r *http.Request) bool { return true },
}

type TrackHandler struct {
	Orders store.OrderStore
}

// Track pousse le statut de la commande sur un websocket, jusqu'à ce qu'elle
// atteigne un état terminal (delivered ou cancelled). Le token JWT passe en
// query (?token=...) : les navigateurs n'envoient pas de header Authorization
// sur un upgrade websocket.
func (h *TrackHandler) Track(c *gin.Context) {
	claims, err := middleware.ParseToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Token invalide ou expiré"})
		return
	}
	userID, _ := claims["user_id"].(string)

	orderID := c.Param("id")
	order, err := h.Orders.GetByID(c.Request.Context(), orderID)
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	conn, err := trackUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Upgrade websocket échoué pour %s: %v", orderID, err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	lastStatus := ""
	for {
		order, err := h.Orders.GetByID(c.Request.Context(), orderID)
		if err != nil {
			return
		}

		if order.Status != lastStatus {
			lastStatus = order.Status
			msg := gin.H{
				"orderId":       order.ID,
				"status":        order.Status,
				"paymentStatus": order.PaymentStatus,
				"updatedAt":     order.UpdatedAt,
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}

		if order.Status == models.OrderDelivered || order.Status == models.OrderCancelled {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, order.Status))
			return
		}

		select {
		case <-ticker.C:
		case <-c.Request.Context().Done():
			return
		}
	}
}
