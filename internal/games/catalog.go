// Package games holds the built-in mini-game catalog and round decks.
package games

import (
	"slices"
	"time"

	"github.com/vytor/intuition/internal/models"
)

var catalog = []models.GameMeta{
	{
		ID:                models.GamePatternCompletion,
		Title:             "Pattern Prism",
		Description:       "Spot the shape that completes the evolving pulse before time shatters it.",
		PrimaryColor:      "#2521FF",
		AccentColor:       "#6C63FF",
		Gradient:          []string{"#1F22FF", "#6F47FF", "#C83AFF"},
		Mode:              models.ModeTimed,
		Icon:              "🧩",
		TargetDuration:    18 * time.Second,
		InitialDifficulty: 3,
	},
	{
		ID:                models.GameSignalVsNoise,
		Title:             "Signal Sifter",
		Description:       "Tease the true frequency out of flickering static. Precision under pressure.",
		PrimaryColor:      "#00C6AE",
		AccentColor:       "#0CD8C0",
		Gradient:          []string{"#0B8772", "#00C6AE", "#66FFE0"},
		Mode:              models.ModePrecision,
		Icon:              "🎛️",
		TargetDuration:    20 * time.Second,
		InitialDifficulty: 3,
	},
	{
		ID:                models.GameWordSprint,
		Title:             "Lexic Rush",
		Description:       "Chain the word that resonates most before your association arc goes dark.",
		PrimaryColor:      "#FF7A93",
		AccentColor:       "#FF4D7A",
		Gradient:          []string{"#7B1F3C", "#FF477E", "#FF8FB3"},
		Mode:              models.ModeStreak,
		Icon:              "⚡",
		TargetDuration:    15 * time.Second,
		InitialDifficulty: 2,
	},
	{
		ID:                models.GameAnomalyScout,
		Title:             "Anomaly Scout",
		Description:       "Probe the grid and flag the outlier tile before it slips out of sight.",
		PrimaryColor:      "#FDBB2D",
		AccentColor:       "#FF9F1C",
		Gradient:          []string{"#FFB347", "#FFCC33", "#FFE29F"},
		Mode:              models.ModePrecision,
		Icon:              "🛰️",
		TargetDuration:    22 * time.Second,
		InitialDifficulty: 4,
	},
}

var decks = map[models.GameID][]models.Round{
	models.GamePatternCompletion: {
		{Prompt: "Complete the prism sequence", Options: []string{"A", "B", "C", "D"}, CorrectIndex: 2, Background: []string{"#151B3D", "#2442A3"}},
		{Prompt: "Which shard balances the arc?", Options: []string{"X", "Y", "Z", "Φ"}, CorrectIndex: 1, Background: []string{"#11152B", "#421D57"}},
		{Prompt: "Find the twin pulse", Options: []string{"◎", "◖", "⊛", "◍"}, CorrectIndex: 0, Background: []string{"#061824", "#104061"}},
	},
	models.GameSignalVsNoise: {
		{Prompt: "Which channel holds the pure tone?", Options: []string{"Alpha", "Nova", "Quark", "Flux"}, CorrectIndex: 1, Background: []string{"#012529", "#035E63", "#04A7A1"}},
		{Prompt: "Lock on to the spike that repeats.", Options: []string{"Pulse A", "Pulse B", "Pulse C", "Pulse D"}, CorrectIndex: 3, Background: []string{"#031018", "#05253A", "#0F4A7B"}},
		{Prompt: "Find the wave unfazed by static.", Options: []string{"Sierra", "Echo", "Calm", "Rift"}, CorrectIndex: 2, Background: []string{"#040C12", "#0A1F2D", "#0E3249"}},
	},
	models.GameWordSprint: {
		{Prompt: "Choose the word that sparks “clarity”.", Options: []string{"obscura", "lucid", "fable", "ember"}, CorrectIndex: 1, Background: []string{"#2E0630", "#641C68", "#A635A5"}},
		{Prompt: "Lightning connection to “momentum”.", Options: []string{"loom", "surge", "flair", "pilot"}, CorrectIndex: 1, Background: []string{"#300B22", "#8B153E", "#FF3D6E"}},
		{Prompt: "Which word pairs with “intuition”?", Options: []string{"rift", "compass", "retreat", "anchor"}, CorrectIndex: 1, Background: []string{"#3C0720", "#921E3D", "#FF616A"}},
	},
	models.GameAnomalyScout: {
		{Prompt: "Flag the tile whose glow drifts out of rhythm.", Options: []string{"Sector A3", "Sector B2", "Sector C4", "Sector D1"}, CorrectIndex: 0, Background: []string{"#1F1402", "#553402", "#FFB347"}},
		{Prompt: "Which panel flickers off-sequence?", Options: []string{"Panel North", "Panel East", "Panel South", "Panel West"}, CorrectIndex: 2, Background: []string{"#241001", "#7A3E03", "#FF9F1C"}},
		{Prompt: "Spot the anomaly before it cloaks.", Options: []string{"Node K", "Node R", "Node V", "Node X"}, CorrectIndex: 3, Background: []string{"#2A1000", "#8B4100", "#FFC45A"}},
	},
}

// All returns the catalog in display order.
func All() []models.GameMeta {
	return slices.Clone(catalog)
}

func Lookup(id models.GameID) (models.GameMeta, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return models.GameMeta{}, false
}

// Rounds returns a copy of the game's round deck, or nil for unknown games.
func Rounds(id models.GameID) []models.Round {
	deck, ok := decks[id]
	if !ok {
		return nil
	}
	return slices.Clone(deck)
}
