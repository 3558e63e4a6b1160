package main

import (
	"context"
	"log"

	"github.com/k4jlpg/inventory/internal/devserver"
	"github.com/k4jlpg/inventory/internal/devserver/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := devserver.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
