package handlers

import (
	"net/http"
	"time"

	"fastfeast_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// UploadImage reçoit une photo (restaurant ou plat) en multipart et retourne
// l'URL publique de l'objet stocké.
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'image' manquant"})
		return
	}

	url, err := services.UploadImage(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetSignedImageURL retourne une URL signée valable 24h pour un objet du
// bucket d'images.
func GetSignedImageURL(c *gin.Context) {
	object := c.Param("object")
	if object == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Objet manquant"})
		return
	}

	signed, err := services.GenerateSignedURL(c.Request.Context(), object, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération URL signée"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signed})
}
