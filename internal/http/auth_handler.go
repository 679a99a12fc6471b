package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"jobboard/internal/domain"
	"jobboard/internal/repository"
	"jobboard/internal/service"
)

// outcome es la respuesta etiquetada que devuelven los endpoints de registro
// y login. El hash de contraseña nunca viaja en User.
type outcome struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	User    *domain.PublicUser `json:"user,omitempty"`
	Tokens  *service.TokenPair `json:"tokens,omitempty"`
}

// AuthHandler mantiene dependencias para endpoints de credenciales.
type AuthHandler struct {
	logger      *zap.Logger
	authServ    *service.AuthService
	sessionServ *service.SessionService
	jwtServ     *service.JWTService
	users       repository.UserRepository
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, sessionServ *service.SessionService, jwtServ *service.JWTService, users repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		authServ:    authServ,
		sessionServ: sessionServ,
		jwtServ:     jwtServ,
		users:       users,
	}
}

// Register maneja POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, outcome{Status: "error", Message: "Invalid request body"})
		return
	}

	if err := h.authServ.Register(c.Request.Context(), req); err != nil {
		h.registerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, outcome{Status: "success", Message: "User registered successfully"})
}

func (h *AuthHandler) registerError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, outcome{Status: "error", Message: vErr.Message})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, outcome{Status: "error", Message: "Email already in use"})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, outcome{Status: "error", Message: "Username already in use"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, outcome{Status: "error", Message: "User already exists"})
	default:
		h.logger.Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, outcome{Status: "error", Message: "Registration failed. Please try again."})
	}
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, outcome{Status: "error", Message: "Invalid request body"})
		return
	}

	user, err := h.authServ.Authenticate(c.Request.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, outcome{Status: "error", Message: vErr.Message})
		case errors.Is(err, service.ErrInvalidCredentials):
			// Email desconocido y contraseña incorrecta responden idéntico.
			c.JSON(http.StatusUnauthorized, outcome{Status: "error", Message: "Invalid email or password"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, outcome{Status: "error", Message: "Login failed. Please try again."})
		}
		return
	}

	public := user.Public()
	resp := outcome{Status: "success", Message: "Login successful", User: &public}

	if h.sessionServ != nil {
		pair, err := h.sessionServ.Open(c.Request.Context(), user, c.Request.UserAgent(), c.ClientIP())
		if err != nil {
			// El login ya está verificado; sin tokens sigue siendo éxito.
			h.logger.Warn("token issue failed", zap.Error(err), zap.Int64("user_id", user.ID))
		} else {
			resp.Tokens = &pair
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh maneja POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid refresh request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if h.jwtServ == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
		return
	}
	tokens, err := h.jwtServ.RefreshPair(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout maneja POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid logout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if h.jwtServ == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
		return
	}
	_ = h.jwtServ.RevokeRefresh(req.RefreshToken)
	c.Status(http.StatusNoContent)
}

// Me maneja GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	if h.users == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user store not configured"})
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("get user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}
