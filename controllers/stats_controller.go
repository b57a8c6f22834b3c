package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/utils"
)

// StatsController reports counts of users, posts and today's page views.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics. Failed counts degrade to zero.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount, postCount, viewsToday int64
	db := s.db.WithContext(ctx.Request.Context())

	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		utils.Sugar.Warnf("count users failed: %v", err)
	}
	if err := db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		utils.Sugar.Warnf("count posts failed: %v", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&models.PageView{}).
		Where("date >= ? AND date < ?", today, today.Add(24*time.Hour)).
		Select("COALESCE(SUM(count),0)").
		Scan(&viewsToday).Error; err != nil {
		utils.Sugar.Warnf("sum page views failed: %v", err)
	}

	utils.Success(ctx, gin.H{
		"user_count":       userCount,
		"post_count":       postCount,
		"page_views_today": viewsToday,
	})
}
