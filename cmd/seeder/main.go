package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/fairway-cup/internal/database"
	"github.com/mauv0809/fairway-cup/internal/scoring"
	"github.com/mauv0809/fairway-cup/internal/tournament"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "fairway.db",
		"MIGRATIONS_DIR": "./migrations",
		"OWNER_ID":       "seed-owner",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := tournament.New(db)

	demo := &tournament.Tournament{
		OwnerID:  cfg["OWNER_ID"],
		Name:     "Fairway Cup Demo",
		TeamMode: true,
		Teams: &scoring.TeamConfig{
			Names:  map[scoring.TeamKey]string{scoring.TeamRed: "Red", scoring.TeamGreen: "Green"},
			Colors: map[scoring.TeamKey]string{scoring.TeamRed: "#DC2626", scoring.TeamGreen: "#059669"},
			Assignments: map[string]scoring.TeamKey{
				"seed-p1": scoring.TeamRed,
				"seed-p2": scoring.TeamRed,
				"seed-p3": scoring.TeamGreen,
				"seed-p4": scoring.TeamGreen,
			},
		},
		Players: []scoring.Player{
			{ID: "seed-p1", Name: "Seeder Player A", Handicap: 5.4},
			{ID: "seed-p2", Name: "Seeder Player B", Handicap: 12.1},
			{ID: "seed-p3", Name: "Seeder Player C", Handicap: 18.9},
			{ID: "seed-p4", Name: "Seeder Player D", Handicap: 24.0},
		},
		Rounds: []scoring.Round{
			{Name: "Opening Round", Order: 0, Holes: 18, Mode: scoring.ModeStroke},
			{Name: "Handicap Saturday", Order: 1, Holes: 18, Mode: scoring.ModeHandicapStroke},
			{Name: "Scramble Sunday", Order: 2, Holes: 18, Mode: scoring.ModeScramble,
				Scramble: &scoring.ScrambleConfig{WithHandicap: true, Strategy: scoring.PairByPosition, LowPct: 20, HighPct: 80}},
		},
		MiniGames: []scoring.MiniGame{
			{Name: "Closest to Pin", SubtractFromScore: true, DeductionValue: 1},
			{Name: "Longest Drive", SubtractFromScore: false, DeductionValue: 0},
		},
	}

	if err := store.CreateTournament(demo); err != nil {
		log.Fatalf("Failed to seed demo tournament: %s", err)
	}
	log.Info("Seeded demo tournament", "tournamentID", demo.ID)

	scores := []tournament.ScoreEntry{
		{RoundID: demo.Rounds[0].ID, PlayerID: "seed-p1", Score: 74},
		{RoundID: demo.Rounds[0].ID, PlayerID: "seed-p2", Score: 81},
		{RoundID: demo.Rounds[0].ID, PlayerID: "seed-p3", Score: 88},
		{RoundID: demo.Rounds[0].ID, PlayerID: "seed-p4", Score: 95},
	}
	miniScores := []tournament.MiniGameScoreEntry{
		{MiniGameID: demo.MiniGames[0].ID, RoundID: demo.Rounds[0].ID, PlayerID: "seed-p2", Value: 1},
		{MiniGameID: demo.MiniGames[1].ID, RoundID: demo.Rounds[0].ID, PlayerID: "seed-p1", Value: 1},
	}
	if err := store.SaveScores(demo.ID, scores, miniScores); err != nil {
		log.Fatalf("Failed to seed scores: %s", err)
	}
	log.Info("Seeded opening round scores", "scores", len(scores), "miniScores", len(miniScores))
	log.Info("Seeder finished.")
}
