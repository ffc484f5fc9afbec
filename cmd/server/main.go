package main

import (
	"context"
	"log"

	"github.com/antonk9218/paybuddy/internal/server"
	"github.com/antonk9218/paybuddy/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
