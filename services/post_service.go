package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/utils"
)

// PostService persists new posts.
type PostService struct {
	db        *gorm.DB
	maxLength int
}

// NewPostService creates a PostService. maxLength <= 0 disables the length check.
func NewPostService(db *gorm.DB, maxLength int) *PostService {
	return &PostService{db: db, maxLength: maxLength}
}

// Create stores a post for userID. The body is reduced to plain text first.
func (s *PostService) Create(ctx context.Context, userID uint, body string) (*models.Post, error) {
	body = utils.SanitizeText(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	if s.maxLength > 0 && utf8.RuneCountInString(body) > s.maxLength {
		return nil, ErrBodyTooLong
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, fmt.Errorf("load author %d: %w", userID, err)
	}

	post := models.Post{Body: body, UserID: author.ID}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.User = &author
	return &post, nil
}
