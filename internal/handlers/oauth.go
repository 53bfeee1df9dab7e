package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fastfeast_back_end/internal/config"
	"fastfeast_back_end/internal/models"
	"fastfeast_back_end/internal/store"
	"fastfeast_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
)

type OAuthHandler struct {
	Users store.UserStore
}

// gothic lit le provider dans la query string : on l'y recopie depuis le
// paramètre d'URL avant de lui déléguer.
func withProvider(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()
}

func (h *OAuthHandler) BeginAuth(c *gin.Context) {
	if c.Param("provider") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun provider spécifié"})
		return
	}
	withProvider(c)
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flux OAuth, rattache (ou crée) le compte local et
// émet le même JWT que le login classique.
func (h *OAuthHandler) CallbackAuth(c *gin.Context) {
	if c.Param("provider") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun provider spécifié"})
		return
	}
	withProvider(c)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if gothUser.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le provider n'a pas fourni d'e-mail"})
		return
	}

	user, err := h.findOrCreate(c, gothUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur compte social"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// ExchangeGoogleCode est le chemin mobile : l'app fournit directement le code
// d'autorisation Google, sans passer par la session web de gothic.
func (h *OAuthHandler) ExchangeGoogleCode(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code manquant"})
		return
	}

	conf := config.GoogleOAuthConfig()
	token, err := conf.Exchange(c.Request.Context(), input.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code invalide"})
		return
	}

	resp, err := conf.Client(c.Request.Context(), token).
		Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur profil Google"})
		return
	}
	defer resp.Body.Close()

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profil Google illisible"})
		return
	}

	user, err := h.findOrCreate(c, goth.User{
		Provider: "google",
		UserID:   info.ID,
		Email:    info.Email,
		Name:     info.Name,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur compte social"})
		return
	}

	jwt, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": jwt, "user": user})
}

func (h *OAuthHandler) findOrCreate(c *gin.Context, gothUser goth.User) (*models.User, error) {
	user, err := h.Users.GetByEmail(c.Request.Context(), gothUser.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	name := gothUser.Name
	if name == "" {
		name = gothUser.NickName
	}
	user = &models.User{
		Name:       name,
		Email:      gothUser.Email,
		Provider:   gothUser.Provider,
		ProviderID: gothUser.UserID,
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		return nil, err
	}
	log.Printf("✅ Compte %s créé via %s", user.Email, gothUser.Provider)
	return user, nil
}
