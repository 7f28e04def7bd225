package main

import (
	"log"
	"os"

	"github.com/minaorangina/doomlings/config"
	"github.com/minaorangina/doomlings/server"
	"github.com/minaorangina/doomlings/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	s := server.NewServer(store.NewInMemoryGameStore(), server.Config{
		Game:           cfg.GameConfig(),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log.New(os.Stderr, "[server] ", log.LstdFlags),
		AccessLog:      os.Stdout,
	})
	s.Addr = cfg.Addr()

	log.Printf("Listening on %s...", s.Addr)
	log.Fatal(s.ListenAndServe())
}
