package cli

import (
	"context"
	"fmt"

	"github.com/theblitlabs/venvctl/internal/venv"
	"github.com/theblitlabs/venvctl/pkg/logger"
)

func RunList(configPath, dir string) {
	log := logger.WithComponent("cli")
	opts := loadOptions(configPath)

	env := venv.New(dir, opts...)
	packages, err := env.List(context.Background())
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Failed to list packages")
	}

	for _, pkg := range packages {
		fmt.Printf("%s==%s\n", pkg.Name, pkg.Version)
	}
}
