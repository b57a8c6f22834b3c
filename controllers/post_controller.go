package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/services"
	"github.com/cppla/microblog/utils"
)

const feedCachePrefix = "cache:posts:feed:"

// PostController creates posts and serves feeds.
type PostController struct {
	posts    *services.PostService
	feed     *services.FeedService
	cacheTTL time.Duration
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *services.PostService, feed *services.FeedService, cacheTTL time.Duration) *PostController {
	return &PostController{posts: posts, feed: feed, cacheTTL: cacheTTL}
}

// CreatePost stores a post for the logged-in user.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Body string `form:"body" json:"body"`
	}
	if err := ctx.ShouldBind(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post, err := p.posts.Create(ctx.Request.Context(), userID, req.Body)
	switch {
	case errors.Is(err, services.ErrEmptyBody):
		utils.Error(ctx, http.StatusBadRequest, 40021, err.Error())
		return
	case errors.Is(err, services.ErrBodyTooLong):
		utils.Error(ctx, http.StatusBadRequest, 40022, err.Error())
		return
	case errors.Is(err, services.ErrNoSuchUser):
		utils.Error(ctx, http.StatusUnauthorized, 40111, "session user no longer exists")
		return
	case err != nil:
		utils.Logger.Error("create post failed", zap.Uint("user_id", userID), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50020, "There was a problem creating your post")
		return
	}

	utils.InvalidateByPrefix(ctx.Request.Context(), feedCachePrefix)
	utils.SuccessMessage(ctx, http.StatusCreated, "Your post was created successfully.", gin.H{"post": post})
}

// ShowPosts serves /posts/, /posts/<user>/, /posts/<page> and /posts/<user>/<page>.
func (p *PostController) ShowPosts(ctx *gin.Context) {
	username, page, ok := parseFeedPath(ctx.Param("path"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40400, "page not found")
		return
	}

	cacheKey := fmt.Sprintf("%suser=%s:page=%d", feedCachePrefix, username, page)
	var cached services.FeedPage
	if utils.CacheGetJSON(ctx.Request.Context(), cacheKey, &cached) {
		utils.Success(ctx, cached)
		return
	}

	feed, err := p.feed.Page(ctx.Request.Context(), services.FeedQuery{Username: username, Page: page})
	if errors.Is(err, services.ErrNoSuchUser) {
		utils.Error(ctx, http.StatusNotFound, 40410, err.Error())
		return
	}
	if err != nil {
		utils.Logger.Error("list posts failed", zap.String("user", username), zap.Int("page", page), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list posts")
		return
	}

	utils.CacheSetJSON(ctx.Request.Context(), cacheKey, feed, p.cacheTTL)
	utils.Success(ctx, feed)
}
