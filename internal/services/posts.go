package services

import (
	stderrors "errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/pkg/errors"
)

const earthRadiusMeters = 6371000.0

type CreatePostInput struct {
	Title          string
	Description    string
	Type           models.PostType
	PosterImageURL string
}

// PostService manages skill posts: creation with content moderation,
// author-scoped listing, archiving, and the geo nearby search.
type PostService struct {
	db         *gorm.DB
	moderation *ModerationService
}

func NewPostService(db *gorm.DB, moderation *ModerationService) *PostService {
	return &PostService{db: db, moderation: moderation}
}

func (s *PostService) Create(subject string, input CreatePostInput) (*models.SkillPost, *errors.AppError) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Title is required")
	}
	if input.Type != models.PostTypeOffer && input.Type != models.PostTypeAsk {
		return nil, errors.BadRequest("Type must be OFFER or ASK")
	}
	if s.moderation.IsInappropriate(input.Title + "\n" + input.Description) {
		return nil, errors.BadRequest("Content was flagged by moderation")
	}

	var author models.User
	if err := s.db.First(&author, "clerk_user_id = ?", subject).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.InvalidOperation("Author account not found")
		}
		return nil, errors.Internal("Failed to load author")
	}

	post := models.SkillPost{
		AuthorID:       author.ID,
		Type:           input.Type,
		Title:          input.Title,
		Description:    input.Description,
		PosterImageURL: input.PosterImageURL,
		CreatedAt:      time.Now(),
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, errors.Internal("Failed to create post")
	}
	post.Author = author
	return &post, nil
}

// Nearby returns non-archived posts whose author last synced a location
// within radiusMeters of the given point. Distance is great-circle
// (haversine); authors without a known location are never returned.
func (s *PostService) Nearby(latitude, longitude float64, radiusMeters int) ([]models.SkillPost, *errors.AppError) {
	var posts []models.SkillPost
	err := s.db.Preload("Author").
		Joins("JOIN users ON users.id = skill_posts.author_id").
		Where("skill_posts.archived = ? AND users.latitude IS NOT NULL AND users.longitude IS NOT NULL", false).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Internal("Failed to load posts")
	}

	nearby := posts[:0]
	for _, p := range posts {
		if !p.Author.HasLocation() {
			continue
		}
		d := haversineMeters(latitude, longitude, *p.Author.Latitude, *p.Author.Longitude)
		if d <= float64(radiusMeters) {
			nearby = append(nearby, p)
		}
	}
	return nearby, nil
}

// ListByAuthor returns every post of the subject, newest first.
func (s *PostService) ListByAuthor(subject string) ([]models.SkillPost, *errors.AppError) {
	var author models.User
	if err := s.db.First(&author, "clerk_user_id = ?", subject).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return []models.SkillPost{}, nil
		}
		return nil, errors.Internal("Failed to load author")
	}

	var posts []models.SkillPost
	err := s.db.Preload("Author").
		Where("author_id = ?", author.ID).
		Order("created_at desc").
		Find(&posts).Error
	if err != nil {
		return nil, errors.Internal("Failed to load posts")
	}
	return posts, nil
}

// Archive hides a post from nearby results. Author only.
func (s *PostService) Archive(postID, subject string) *errors.AppError {
	var post models.SkillPost
	if err := s.db.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("Skill post not found")
		}
		return errors.Internal("Failed to load post")
	}

	if post.Author.ClerkUserID != subject {
		return errors.Forbidden("Only the author can archive this post")
	}

	if err := s.db.Model(&post).Update("archived", true).Error; err != nil {
		return errors.Internal("Failed to archive post")
	}
	return nil
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
