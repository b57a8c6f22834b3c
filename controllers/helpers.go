package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/middleware"
)

// sessionPayload reports the session fields visible to the client.
func sessionPayload(ctx *gin.Context) gin.H {
	if !ctx.GetBool(middleware.ContextLoggedInKey) {
		return gin.H{"logged_in": false}
	}
	userID, _ := middleware.CurrentUserID(ctx)
	return gin.H{
		"logged_in": true,
		"user_id":   userID,
		"user_name": ctx.GetString(middleware.ContextUserNameKey),
	}
}

func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	cfg := config.Get()
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(cfg.SessionCookieName, token, maxAge, "/", "", cfg.SessionSecureCookie, true)
}

func clearSessionCookie(ctx *gin.Context) {
	setSessionCookie(ctx, "", -1)
}

// parseFeedPath splits the part of a feed URL after /posts/ into an optional username and
// a page number. A lone all-digit segment is a page unless it carries a trailing slash,
// which marks a username; a second segment must be all digits.
func parseFeedPath(raw string) (username string, page int, ok bool) {
	rest := strings.TrimPrefix(raw, "/")
	if rest == "" {
		return "", 1, true
	}
	parts := strings.Split(rest, "/")
	if parts[0] == "" {
		return "", 0, false
	}
	switch len(parts) {
	case 1:
		if !isDigits(parts[0]) {
			return parts[0], 1, true
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return "", 0, false
		}
		return "", n, true
	case 2:
		if parts[1] == "" {
			return parts[0], 1, true
		}
		if !isDigits(parts[1]) {
			return "", 0, false
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", 0, false
		}
		return parts[0], n, true
	default:
		return "", 0, false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
