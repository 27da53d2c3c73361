package main

import (
	"os"

	"github.com/gekko3d/cornellbox"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := cornellbox.DefaultCornellConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	app := cornellbox.NewAppBuilder().
		UseModule(cornellbox.CornellModules(cfg)...).
		Build()

	if err := app.Run(); err != nil {
		app.Logger().Errorf("%v", err)
		os.Exit(1)
	}
}
