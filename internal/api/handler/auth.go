package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"campuscare/backend/internal/models"
)

const tokenTTL = 72 * time.Hour

// generateJWT issues an HS256 token carrying the user id and role.
func (h *Handler) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(tokenTTL).Unix(),
		"iss":     "campuscare-backend",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}

// parseActor validates a token string and resolves the (userID, role) pair
// that every core operation receives.
func (h *Handler) parseActor(tokenString string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return models.Actor{}, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Actor{}, fmt.Errorf("invalid claims")
	}
	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	role, roleOK := models.ParseRole(roleStr)
	if userID == "" || !roleOK {
		return models.Actor{}, fmt.Errorf("incomplete claims")
	}
	return models.Actor{UserID: userID, Role: role}, nil
}

// AuthRequired resolves the actor from the Authorization header and stashes
// it in the request context. Core operations only ever see the explicit
// actor, never ambient auth state.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
			return
		}
		actor, err := h.parseActor(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set("actor", actor)
		c.Next()
	}
}

func actorFrom(c *gin.Context) models.Actor {
	return c.MustGet("actor").(models.Actor)
}

type registerRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=6"`
	Role           string   `json:"role"`
	NotifyChannels []string `json:"notifyChannels"`
}

// Register creates a portal account. The role defaults to STUDENT.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	role := models.RoleStudent
	if req.Role != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role " + req.Role, "kind": "validation"})
			return
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.writeError(c, err)
		return
	}

	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       string(hash),
		Role:           role,
		NotifyChannels: req.NotifyChannels,
	}
	if err := h.Store.CreateUser(user); err != nil {
		h.writeError(c, err)
		return
	}

	h.Log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully", "id": user.ID, "role": user.Role})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	user, err := h.Store.GetUserByEmail(req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.generateJWT(user)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "id": user.ID, "role": user.Role})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	actor := actorFrom(c)
	user, err := h.Store.GetUserByID(actor.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
