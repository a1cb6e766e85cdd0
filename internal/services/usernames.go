package services

import (
	"fmt"
	"math/rand"
)

var usernameAdjectives = []string{
	"Agile", "Bright", "Clever", "Daring", "Eager", "Fearless",
	"Gentle", "Happy", "Jolly", "Keen", "Lucky", "Mighty",
}

var usernameNouns = []string{
	"Panda", "Fox", "Lion", "Tiger", "Eagle", "Shark",
	"Wolf", "Bear", "Hawk", "Koala", "Jaguar", "Leopard",
}

// UsernameGenerator produces anonymous display names like "CleverFox42".
type UsernameGenerator struct {
	rng *rand.Rand
}

func NewUsernameGenerator(seed int64) *UsernameGenerator {
	return &UsernameGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *UsernameGenerator) Generate() string {
	adjective := usernameAdjectives[g.rng.Intn(len(usernameAdjectives))]
	noun := usernameNouns[g.rng.Intn(len(usernameNouns))]
	number := 10 + g.rng.Intn(90)
	return fmt.Sprintf("%s%s%d", adjective, noun, number)
}

// GenerateUnique returns count names, none of which are in taken and none
// of which repeat.
func (g *UsernameGenerator) GenerateUnique(count int, taken map[string]struct{}) []string {
	seen := make(map[string]struct{}, count)
	names := make([]string, 0, count)
	for len(names) < count {
		name := g.Generate()
		if _, dup := seen[name]; dup {
			continue
		}
		if _, used := taken[name]; used {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
