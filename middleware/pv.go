package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/utils"
)

// PageViewRecorder counts successful GET requests per day and path.
func PageViewRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodGet {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}
		path := c.Request.URL.Path
		if path == "/health" || strings.HasPrefix(path, "/stats") {
			return
		}

		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		// Atomic upsert to avoid duplicate key errors under concurrency
		err := db.WithContext(c.Request.Context()).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "path"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("page_views.count + 1"), "updated_at": now}),
		}).Create(&models.PageView{Date: midnight, Path: path, Count: 1}).Error
		if err != nil {
			utils.Sugar.Warnf("page view record failed path=%s err=%v", path, err)
		}
	}
}
