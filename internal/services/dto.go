package services

import (
	"time"

	"github.com/ankit705yadav/skillCircle/internal/models"
)

// DTO shapes shared between the REST responses and notification payloads.
// Entities reference each other by id; these are the flattened views the
// frontend actually renders.

type AuthorDTO struct {
	ClerkUserID string `json:"clerkUserId"`
	Username    string `json:"username"`
}

type SkillPostDTO struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Type           string    `json:"type"`
	Author         AuthorDTO `json:"author"`
	PosterImageURL string    `json:"posterImageUrl"`
	Archived       bool      `json:"archived"`
}

type ConnectionDTO struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"`
	SkillPost SkillPostDTO `json:"skillPost"`
	Requester AuthorDTO    `json:"requester"`
	Approver  AuthorDTO    `json:"approver"`
	CreatedAt time.Time    `json:"createdAt"`
}

type MessageDTO struct {
	ID           string    `json:"id"`
	ConnectionID string    `json:"connectionId"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	Sender       AuthorDTO `json:"sender"`
}

type StatsDTO struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalConnections  int64 `json:"totalConnections"`
	ActiveConnections int64 `json:"activeConnections"`
	TotalPosts        int64 `json:"totalPosts"`
	ActivePosts       int64 `json:"activePosts"`
}

func AuthorToDTO(u *models.User) AuthorDTO {
	return AuthorDTO{
		ClerkUserID: u.ClerkUserID,
		Username:    u.DisplayName(),
	}
}

func PostToDTO(p *models.SkillPost) SkillPostDTO {
	return SkillPostDTO{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Type:           string(p.Type),
		Author:         AuthorToDTO(&p.Author),
		PosterImageURL: p.PosterImageURL,
		Archived:       p.Archived,
	}
}

func ConnectionToDTO(c *models.Connection) ConnectionDTO {
	return ConnectionDTO{
		ID:        c.ID,
		Status:    string(c.Status),
		SkillPost: PostToDTO(&c.SkillPost),
		Requester: AuthorToDTO(&c.Requester),
		Approver:  AuthorToDTO(&c.Approver),
		CreatedAt: c.CreatedAt,
	}
}

func MessageToDTO(m *models.Message) MessageDTO {
	return MessageDTO{
		ID:           m.ID,
		ConnectionID: m.ConnectionID,
		Content:      m.Content,
		Timestamp:    m.CreatedAt,
		Sender:       AuthorToDTO(&m.Sender),
	}
}
