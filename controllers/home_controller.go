package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/microblog/utils"
)

// Home answers the landing page with the current session state.
func Home(ctx *gin.Context) {
	utils.Success(ctx, gin.H{
		"name":    "microblog",
		"session": sessionPayload(ctx),
		"links": gin.H{
			"login": "/login",
			"feed":  "/posts/",
		},
	})
}

// Health is a liveness probe.
func Health(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"status": "ok"})
}
