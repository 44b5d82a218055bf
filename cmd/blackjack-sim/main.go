// blackjack-sim plays a session of rounds against the table with a chosen
// policy and prints the aggregated results. Sessions can be recorded to a
// SQLite database for later inspection.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/MJE43/blackjack-table-go/internal/blackjack"
	"github.com/MJE43/blackjack-table-go/internal/policy"
	"github.com/MJE43/blackjack-table-go/internal/scripting"
	"github.com/MJE43/blackjack-table-go/internal/sim"
	"github.com/MJE43/blackjack-table-go/internal/store"
)

func main() {
	var (
		rounds     = flag.Int("rounds", 1000, "number of rounds to play")
		seed       = flag.Int64("seed", 0, "table RNG seed (0 = from entropy)")
		policyName = flag.String("policy", "basic", "policy: random, mimic, basic, or script")
		scriptPath = flag.String("script", "", "path to a JS policy script (implies -policy script)")
		decks      = flag.Int("decks", blackjack.DefaultDecks, "decks in the shoe")
		natural    = flag.Bool("natural", false, "pay 1.5x on a natural blackjack win")
		dbPath     = flag.String("db", "", "record the session to this SQLite database")
		showLast   = flag.Bool("render", false, "render the final round")
	)
	flag.Parse()

	if err := run(*rounds, *seed, *policyName, *scriptPath, *decks, *natural, *dbPath, *showLast); err != nil {
		fmt.Fprintf(os.Stderr, "blackjack-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(rounds int, seed int64, policyName, scriptPath string, decks int, natural bool, dbPath string, showLast bool) error {
	cfg := blackjack.TableConfig{Decks: decks, NaturalBonus: natural}
	if seed != 0 {
		cfg.Seed = &seed
	}
	table := blackjack.NewTable(cfg)
	effectiveSeed := table.EffectiveSeed()

	p, err := buildPolicy(policyName, scriptPath, effectiveSeed)
	if err != nil {
		return err
	}

	var recorder sim.RoundRecorder
	var db *store.Store
	var sessionID string
	if dbPath != "" {
		db, err = store.New(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return err
		}

		sessionID, err = db.CreateSession(&store.Session{
			Policy:       p.Name(),
			Seed:         effectiveSeed,
			Decks:        table.Shoe().Decks(),
			NaturalBonus: natural,
		})
		if err != nil {
			return err
		}
		rec := store.NewSessionRecorder(db, sessionID, 100)
		defer rec.Flush()
		recorder = rec
	}

	stats, err := sim.NewRunner(table, p, recorder).Run(rounds)
	if err != nil {
		return err
	}

	if db != nil {
		if rec, ok := recorder.(*store.SessionRecorder); ok {
			if err := rec.Flush(); err != nil {
				return err
			}
		}
		if err := db.EndSession(sessionID, stats); err != nil {
			return err
		}
	}

	fmt.Printf("policy: %s  seed: %d  decks: %d  natural_bonus: %v\n",
		p.Name(), effectiveSeed, table.Shoe().Decks(), natural)
	fmt.Printf("rounds: %d  wins: %d  losses: %d  pushes: %d\n",
		stats.Rounds, stats.Wins, stats.Losses, stats.Pushes)
	fmt.Printf("naturals: %d  doubles: %d  busts: %d\n",
		stats.Naturals, stats.Doubles, stats.Busts)
	fmt.Printf("best streak: %+d  worst streak: %+d\n", stats.BestStreak, stats.WorstStreak)
	fmt.Printf("total return: %s  per round: %s\n",
		stats.TotalReturn.StringFixed(1), stats.PerRound().StringFixed(4))
	if sessionID != "" {
		fmt.Printf("session: %s (%s)\n", sessionID, dbPath)
	}

	if showLast {
		fmt.Println("--- final round ---")
		table.Render(os.Stdout)
	}
	return nil
}

func buildPolicy(name, scriptPath string, seed int64) (policy.Policy, error) {
	if scriptPath != "" || name == "script" {
		if scriptPath == "" {
			return nil, fmt.Errorf("-policy script requires -script")
		}
		source, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		return scripting.NewPolicy(string(source))
	}
	return policy.New(name, seed)
}
