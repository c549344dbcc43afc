package cli

import (
	"context"

	"github.com/theblitlabs/venvctl/internal/venv"
	"github.com/theblitlabs/venvctl/pkg/logger"
)

func RunInstall(configPath, dir string, packages []string) {
	log := logger.WithComponent("cli")
	opts := loadOptions(configPath)

	env := venv.New(dir, opts...)
	results, err := env.Install(context.Background(), packages)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Failed to install packages")
	}

	failed := 0
	for _, result := range results {
		if result.ExitCode != 0 {
			failed++
		}
	}
	if failed > 0 {
		log.Warn().Int("failed", failed).Int("total", len(results)).Msg("Some installs reported failure")
	}
}
