package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"zettel-todo/internal/repository"
	"zettel-todo/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger     *zap.Logger
	authServ   *service.AuthService
	avatarServ *service.AvatarService
	jwtServ    *service.JWTService
	users      repository.UserRepository
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, authServ *service.AuthService, avatarServ *service.AvatarService, jwtServ *service.JWTService, users repository.UserRepository) *UserHandler {
	return &UserHandler{
		logger:     logger,
		authServ:   authServ,
		avatarServ: avatarServ,
		jwtServ:    jwtServ,
		users:      users,
	}
}

// Signup maneja POST /user/signup.
func (h *UserHandler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=7,max=72"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.authServ.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrInvalidUsername),
			errors.Is(err, service.ErrInvalidPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		default:
			h.logger.Error("signup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign up"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": user.ID})
}

// Login maneja POST /user/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.authServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		case errors.Is(err, service.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "email not verified"})
			return
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
			return
		}
	}

	token, err := h.jwtServ.Issue(user.ID)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// Verify maneja POST /user/verify.
func (h *UserHandler) Verify(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid verify request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.authServ.ConfirmVerification(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrCodeInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired code"})
			return
		}
		h.logger.Error("verify failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify"})
		return
	}

	token, err := h.jwtServ.Issue(user.ID)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// Me maneja GET /user/me.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("get user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UploadAvatar maneja POST /user/avatar.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.avatarServ.Upload(c.Request.Context(), userID, data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAvatarTooLarge),
			errors.Is(err, service.ErrAvatarInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		default:
			h.logger.Error("avatar upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not upload avatar"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// DeleteAvatar maneja DELETE /user/avatar.
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	if err := h.avatarServ.Delete(c.Request.Context(), userID); err != nil {
		h.logger.Error("avatar delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete avatar"})
		return
	}
	c.Status(http.StatusNoContent)
}
