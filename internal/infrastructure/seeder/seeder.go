package seeder

import (
	"crypto/sha256"
	"encoding/hex"
	"log"

	"github.com/playrummy/ledger/internal/domain"
)

// Seeder handles database seeding operations for development environments
type Seeder struct {
	userRepo domain.UserRepository
	gameRepo domain.GameRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(userRepo domain.UserRepository, gameRepo domain.GameRepository) *Seeder {
	return &Seeder{
		userRepo: userRepo,
		gameRepo: gameRepo,
	}
}

// SeedUsers seeds the database with initial users. Seeded users start at
// zero coins like any other account; grants go through the economy use case.
func (s *Seeder) SeedUsers() error {
	log.Printf("Seeding users...")

	hash := sha256.Sum256([]byte("password123"))
	passwordHash := hex.EncodeToString(hash[:])

	users := []struct {
		username string
		email    string
	}{
		{"alice", "alice@example.com"},
		{"bob", "bob@example.com"},
		{"carol", "carol@example.com"},
		{"dave", "dave@example.com"},
	}

	for _, u := range users {
		existing, err := s.userRepo.GetByUsername(u.username)
		if err != nil {
			log.Printf("Error checking existing user %q, skipping: %v", u.username, err)
			continue
		}
		if existing != nil {
			log.Printf("User %q already exists, skipping", u.username)
			continue
		}

		user := &domain.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: passwordHash,
		}
		if err := s.userRepo.Create(user); err != nil {
			log.Printf("Error creating user %q", u.username)
			return err
		}
		log.Printf("Created user %q", u.username)
	}

	log.Printf("User seeding completed successfully")
	return nil
}

// SeedGames seeds a demo game so rounds and actions can be exercised locally
func (s *Seeder) SeedGames() error {
	log.Printf("Seeding games...")

	game := &domain.Game{
		Metadata: domain.JSONB{
			"variant":     "classic",
			"max_players": 4,
			"deck_count":  2,
		},
	}
	if err := s.gameRepo.Create(game); err != nil {
		log.Printf("Error creating demo game")
		return err
	}

	log.Printf("Created demo game %d", game.ID)
	return nil
}
