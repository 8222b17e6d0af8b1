package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rollcall-dev/rollcall/db"
	"github.com/rollcall-dev/rollcall/internal/auth"
	"github.com/rollcall-dev/rollcall/internal/services"
	"github.com/rollcall-dev/rollcall/internal/types"
	"github.com/rollcall-dev/rollcall/internal/utils"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest mirrors the OAuth2 password-grant form, so the username field
// carries the email.
type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := services.GetUserByEmail(db.DB, email)

	if err != nil {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if existing != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	user, err := services.CreateUser(db.DB, email, req.Name, req.Password)

	if err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

// authenticate resolves credentials to a user. It deliberately collapses
// "no such user" and "wrong password" into a single failure.
func authenticate(email, password string) (string, bool) {
	user, err := services.GetUserByEmail(db.DB, strings.ToLower(strings.TrimSpace(email)))

	if err != nil {
		log.Printf("Database error when fetching user: %v", err)
		return "", false
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return "", false
	}

	return user.Email, true
}

func issueToken(ctx *gin.Context, email string) {
	token, err := auth.GenerateTokenWithTTL(email, auth.AccessTokenTTL())

	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Token is the form-encoded OAuth2 password-grant entry point.
func Token(ctx *gin.Context) {
	var req TokenRequest

	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email, ok := authenticate(req.Username, req.Password)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	issueToken(ctx, email)
}

// Login is the JSON entry point with the same semantics as Token.
func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email, ok := authenticate(req.Email, req.Password)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	issueToken(ctx, email)
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := services.GetUserByEmail(db.DB, currentUser.Email)

	if err != nil || user == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}
