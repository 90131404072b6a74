package main

import (
	"fmt"
	"os"

	"github.com/natagames/natarun/internal/game"
)

// SimulateCmd plays headless runs with a simple greedy strategy and
// reports how far each run gets. Useful for balancing catalog content.
type SimulateCmd struct {
	Config  string `short:"c" help:"Run config file (HCL)" default:"natarun.hcl"`
	Catalog string `help:"Directory with swapped content catalogs (TOML)"`
	Runs    int    `short:"n" help:"Number of runs to simulate" default:"10"`
	Seed    int64  `help:"Base seed; run i uses seed+i (0 = random)"`
	Debug   bool   `help:"Verbose logging"`
}

func (s *SimulateCmd) Run() error {
	logger := setupLogger(os.Stderr, s.Debug)

	cfg, cat, err := loadContent(s.Config, s.Catalog, s.Seed)
	if err != nil {
		return err
	}

	var totalAnte, bestAnte int
	for i := 0; i < s.Runs; i++ {
		runCfg := cfg
		if s.Seed != 0 {
			runCfg.Seed = s.Seed + int64(i)
		}

		g := game.New(runCfg, cat, logger)
		ante := autoplay(g)
		totalAnte += ante
		if ante > bestAnte {
			bestAnte = ante
		}
		logger.Info("run finished", "run", i+1, "ante", ante)
	}

	fmt.Printf("runs: %d  best ante: %d  mean ante: %.2f\n",
		s.Runs, bestAnte, float64(totalAnte)/float64(s.Runs))
	return nil
}

// autoplay drives a run to game over with a greedy strategy: always play
// the best-scoring selection among a handful of candidates, never skip
// blinds, buy nothing. Returns the ante reached.
func autoplay(g *game.Game) int {
	lastAnte := 1
	g.Callbacks.OnUpdate = func(snap game.Snapshot) {
		lastAnte = snap.Ante
	}

	g.PrepareBlindSelect()
	for g.State() != game.StateGameOver {
		switch g.State() {
		case game.StateBlindSelect:
			g.StartRound()
		case game.StatePlaying:
			if !playGreedy(g) {
				return lastAnte
			}
		case game.StateShop:
			g.NextRound()
		default:
			return lastAnte
		}
	}
	return lastAnte
}

// playGreedy tries each hand-size prefix of the current hand sorted by
// rank and plays the selection with the best preview total.
func playGreedy(g *game.Game) bool {
	g.SortHand("rank")
	snap := g.Snapshot()

	bestSize, bestTotal := 0, -1
	for size := 1; size <= 5 && size <= len(snap.Hand); size++ {
		selectPrefix(g, snap, size)
		if preview := g.EvaluateSelected(); preview != nil && preview.Total > bestTotal {
			bestSize, bestTotal = size, preview.Total
		}
		clearSelection(g)
	}
	if bestSize == 0 {
		return false
	}

	selectPrefix(g, snap, bestSize)
	return g.PlayHand()
}

func selectPrefix(g *game.Game, snap game.Snapshot, n int) {
	for i := 0; i < n && i < len(snap.Hand); i++ {
		g.SelectCard(snap.Hand[i].ID)
	}
}

func clearSelection(g *game.Game) {
	for _, c := range g.Snapshot().Hand {
		if c.Selected {
			g.SelectCard(c.ID)
		}
	}
}
