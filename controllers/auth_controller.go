package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/services"
	"github.com/cppla/microblog/utils"
)

// AuthController handles login, logout and session inspection.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// LoginForm describes the fields the login endpoint expects.
func (a *AuthController) LoginForm(ctx *gin.Context) {
	utils.Success(ctx, gin.H{
		"action":  "/login",
		"method":  http.MethodPost,
		"fields":  []string{"username", "password"},
		"session": sessionPayload(ctx),
	})
}

// Login verifies credentials and establishes a session cookie.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := ctx.ShouldBind(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, services.ErrMissingCredentials.Error())
		return
	}

	res, err := a.auth.Authenticate(ctx.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrNoSuchUser),
		errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrMissingCredentials):
		utils.Error(ctx, http.StatusUnauthorized, 40102, err.Error())
		return
	case err != nil:
		utils.Logger.Error("authenticate failed", zap.String("username", req.Username), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to authenticate")
		return
	}

	ttl := config.Get().SessionTTL
	token, err := utils.GenerateToken(res.UserID, res.Name, ttl)
	if err != nil {
		utils.Logger.Error("issue session token failed", zap.Uint("user_id", res.UserID), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create session")
		return
	}
	setSessionCookie(ctx, token, int(ttl.Seconds()))

	utils.Logger.Info("user logged in", zap.Uint("user_id", res.UserID), zap.String("username", res.Username))
	utils.SuccessMessage(ctx, http.StatusOK, fmt.Sprintf("Hello %s, %s", res.Name, res.Message), gin.H{
		"token":     token,
		"logged_in": true,
		"user_id":   res.UserID,
		"user_name": res.Name,
	})
}

// Logout revokes the presented session token and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	if claims, token, ok := middleware.CurrentClaims(ctx); ok {
		utils.BlacklistToken(ctx.Request.Context(), token, claims.Expiry(config.Get().SessionTTL))
		utils.Logger.Info("user logged out", zap.Uint("user_id", claims.UserID))
	}
	clearSessionCookie(ctx)
	utils.SuccessMessage(ctx, http.StatusOK, "You have been logged out successfully", gin.H{"logged_in": false})
}

// Session returns the current session fields.
func (a *AuthController) Session(ctx *gin.Context) {
	utils.Success(ctx, sessionPayload(ctx))
}
