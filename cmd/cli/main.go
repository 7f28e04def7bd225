package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/minaorangina/doomlings/config"
	"github.com/minaorangina/doomlings/engine"
	"github.com/minaorangina/doomlings/game"
	"github.com/minaorangina/doomlings/players"
	"github.com/minaorangina/doomlings/protocol"
)

var names = []string{"Harry", "Sally", "Hermione", "Ron", "Delilah", "Elton"}

func main() {
	numPlayers := flag.Int("players", 3, "number of bots at the table (2-6)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	limit := flag.Duration("timeout", time.Minute, "give up after this long")
	verbose := flag.Bool("v", false, "log engine diagnostics")
	flag.Parse()

	if *numPlayers < 2 || *numPlayers > len(names) {
		log.Fatalf("players must be between 2 and %d", len(names))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}
	gameConfig := cfg.GameConfig()
	gameConfig.RevealTimeout = time.Second

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "[game] ", log.LstdFlags)
	}

	rng := rand.New(rand.NewSource(*seed))
	bots := []*players.Bot{}
	seated := players.Players{}
	for _, name := range names[:*numPlayers] {
		b := players.NewBot(players.NewID(), name, rand.New(rand.NewSource(rng.Int63())))
		bots = append(bots, b)
		seated = append(seated, b)
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		CreatorID: bots[0].ID(),
		Players:   seated,
		GameOpts:  game.GameOpts{Config: gameConfig, Rand: rand.New(rand.NewSource(rng.Int63())), Logger: logger},
		Logger:    logger,
	})
	if err != nil {
		log.Fatal("Could not initialise a new game: ", err)
	}
	defer ge.Stop()

	for _, b := range bots {
		b.Attach(ge)
	}
	ge.Receive(protocol.InboundMessage{PlayerID: bots[0].ID(), Command: protocol.Start})

	deadline := time.After(*limit)
	for _, b := range bots {
		select {
		case <-b.Done():
		case <-deadline:
			log.Fatal("Game did not finish in time")
		}
	}

	view := ge.FullState()
	fmt.Printf("Game %s (seed %d)\n\n", view.GameID, *seed)
	for _, entry := range view.Log {
		fmt.Println(entry.Message)
	}
	fmt.Println()
	players.DisplayScores(os.Stdout, view)
}
