package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/internal/services"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create POST /api/skills
func (h *PostHandler) Create(c *gin.Context) {
	var req struct {
		Title          string `json:"title" binding:"required"`
		Description    string `json:"description"`
		Type           string `json:"type" binding:"required"`
		PosterImageURL string `json:"posterImageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	post, appErr := h.posts.Create(subjectFrom(c), services.CreatePostInput{
		Title:          req.Title,
		Description:    req.Description,
		Type:           models.PostType(req.Type),
		PosterImageURL: req.PosterImageURL,
	})
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusCreated, services.PostToDTO(post))
}

// Nearby GET /api/skills/nearby?lat=..&lon=..&radius=..
func (h *PostHandler) Nearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
		return
	}
	radius, err := strconv.Atoi(c.DefaultQuery("radius", "1000000"))
	if err != nil || radius <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
		return
	}

	posts, appErr := h.posts.Nearby(lat, lon, radius)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, lo.Map(posts, func(p models.SkillPost, _ int) services.SkillPostDTO {
		return services.PostToDTO(&p)
	}))
}

// Mine GET /api/skills/my-skills
func (h *PostHandler) Mine(c *gin.Context) {
	posts, appErr := h.posts.ListByAuthor(subjectFrom(c))
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, lo.Map(posts, func(p models.SkillPost, _ int) services.SkillPostDTO {
		return services.PostToDTO(&p)
	}))
}

// Archive POST /api/skills/:id/archive
func (h *PostHandler) Archive(c *gin.Context) {
	if appErr := h.posts.Archive(c.Param("id"), subjectFrom(c)); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post archived successfully"})
}
