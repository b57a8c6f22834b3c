package services

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/cppla/microblog/models"
)

// ResultsPerPage is the feed window size unless configured otherwise.
const ResultsPerPage = 25

// FeedQuery selects a feed page. An empty Username means all posts; Page is 1-based.
type FeedQuery struct {
	Username string
	Page     int
}

// FeedPage is one window of a reverse-chronological feed.
type FeedPage struct {
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Posts    []models.Post `json:"posts"`
	User     *models.User  `json:"user"`
	Total    int64         `json:"total"`
	HasMore  bool          `json:"has_more"`
}

// FeedService reads paginated feeds.
type FeedService struct {
	db       *gorm.DB
	pageSize int
}

// NewFeedService creates a FeedService; pageSize <= 0 means ResultsPerPage.
func NewFeedService(db *gorm.DB, pageSize int) *FeedService {
	if pageSize <= 0 {
		pageSize = ResultsPerPage
	}
	return &FeedService{db: db, pageSize: pageSize}
}

// PageSize returns the window size used by Page.
func (s *FeedService) PageSize() int {
	return s.pageSize
}

// Offset is the number of leading rows skipped for a page, never negative.
// Pages past the int range saturate at math.MaxInt.
func Offset(page, pageSize int) int {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// Page returns posts newest first, optionally limited to one author.
// A username that does not resolve yields ErrNoSuchUser.
func (s *FeedService) Page(ctx context.Context, q FeedQuery) (*FeedPage, error) {
	var user *models.User
	if q.Username != "" {
		u, err := findUserByUsername(ctx, s.db, q.Username)
		if err != nil {
			return nil, err
		}
		user = u
	}

	scope := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.Post{})
		if user != nil {
			tx = tx.Where("user_id = ?", user.ID)
		}
		return tx
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	result := &FeedPage{
		Page:     q.Page,
		PageSize: s.pageSize,
		Posts:    []models.Post{},
		User:     user,
		Total:    total,
	}
	offset := Offset(q.Page, s.pageSize)
	if offset == math.MaxInt {
		return result, nil
	}

	// one extra row tells whether another page exists
	posts := make([]models.Post, 0, s.pageSize+1)
	err := scope().
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(s.pageSize + 1).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	result.HasMore = len(posts) > s.pageSize
	if result.HasMore {
		posts = posts[:s.pageSize]
	}
	result.Posts = posts
	return result, nil
}
