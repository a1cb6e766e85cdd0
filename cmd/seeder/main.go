package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ankit705yadav/skillCircle/internal/config"
	"github.com/ankit705yadav/skillCircle/internal/database"
	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/pkg/utils"
)

// Seeds a handful of located users and skill posts for local development,
// and prints dev tokens so the frontend can impersonate them.
func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.SkillPost{},
		&models.Connection{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seedUsers := []struct {
		subject  string
		username string
		lat, lon float64
	}{
		{"dev_user_alice", "CleverFox42", 48.8566, 2.3522},
		{"dev_user_bob", "MightyPanda17", 48.8606, 2.3376},
		{"dev_user_carol", "LuckyHawk88", 48.8738, 2.2950},
	}

	users := make(map[string]models.User, len(seedUsers))
	for _, su := range seedUsers {
		lat, lon, name := su.lat, su.lon, su.username
		user := models.User{
			ClerkUserID: su.subject,
			Username:    &name,
			Latitude:    &lat,
			Longitude:   &lon,
			CreatedAt:   time.Now(),
		}
		if err := database.DB.Where("clerk_user_id = ?", su.subject).FirstOrCreate(&user).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", su.subject, err)
		}
		users[su.subject] = user

		token, err := utils.GenerateDevToken(su.subject)
		if err != nil {
			log.Fatalf("Failed to mint dev token: %v", err)
		}
		fmt.Printf("%s (%s): %s\n", su.username, su.subject, token)
	}

	posts := []struct {
		author      string
		postType    models.PostType
		title       string
		description string
	}{
		{"dev_user_alice", models.PostTypeOffer, "Guitar lessons", "Acoustic and electric, beginner friendly."},
		{"dev_user_alice", models.PostTypeAsk, "Help with French", "Conversation practice once a week."},
		{"dev_user_bob", models.PostTypeOffer, "Sourdough baking", "I share starter and techniques."},
		{"dev_user_carol", models.PostTypeAsk, "Bike repair basics", "Fixing a flat, adjusting brakes."},
	}

	for _, sp := range posts {
		post := models.SkillPost{
			AuthorID:    users[sp.author].ID,
			Type:        sp.postType,
			Title:       sp.title,
			Description: sp.description,
			CreatedAt:   time.Now(),
		}
		if err := database.DB.
			Where("author_id = ? AND title = ?", post.AuthorID, post.Title).
			FirstOrCreate(&post).Error; err != nil {
			log.Fatalf("Failed to seed post %q: %v", sp.title, err)
		}
	}

	log.Println("Seeding complete")
}
