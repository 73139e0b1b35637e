package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/iamasit07/quadtoe/internal/config"
	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/iamasit07/quadtoe/internal/player"
	"github.com/iamasit07/quadtoe/internal/service/bot"
	"github.com/iamasit07/quadtoe/pkg/logging"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	cfg := config.LoadConfig()

	difficulty := flag.String("difficulty", cfg.BotDifficulty, "bot difficulty: easy, medium or hard")
	depth := flag.Int("depth", cfg.SearchDepth, "search depth in plies")
	human := flag.Int("human", 1, "side the human plays (1 = X, 2 = O, 0 = AI vs AI)")
	parallel := flag.Bool("parallel", cfg.SearchParallel, "search root moves in parallel")
	maxMoves := flag.Int("max-moves", 0, "stop after this many moves (0 = no limit)")
	verbose := flag.Bool("v", false, "log search events")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := logging.New(level, true)

	profile, err := bot.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *human < 0 || *human > 2 {
		fmt.Fprintln(os.Stderr, "-human must be 0, 1 or 2")
		os.Exit(2)
	}

	newAI := func(side domain.Cell) player.Player {
		engine := bot.NewEngine(profile,
			bot.WithDepth(*depth),
			bot.WithParallel(*parallel),
			bot.WithEventSink(bot.LogSink(logging.Component(logger, "bot"))),
		)
		return player.NewAIPlayer(side, engine)
	}

	sides := map[domain.Cell]player.Player{}
	for _, side := range []domain.Cell{domain.PlayerA, domain.PlayerB} {
		if int(side) == *human {
			sides[side] = player.NewHumanPlayer(side, os.Stdin, os.Stdout)
		} else {
			sides[side] = newAI(side)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	match := player.NewMatch(sides[domain.PlayerA], sides[domain.PlayerB], os.Stdout)
	match.MaxMoves = *maxMoves
	if _, err := match.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
