package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/vaxscheduler/internal/buildinfo"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := scheduler.NewApp(ctx, cfg, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx, os.Stdin)

}
