package cli

import (
	"github.com/theblitlabs/venvctl/internal/venv"
	"github.com/theblitlabs/venvctl/pkg/logger"
)

func RunDestroy(configPath, dir string) {
	log := logger.WithComponent("cli")
	opts := loadOptions(configPath)

	env := venv.New(dir, opts...)
	if err := env.Destroy(); err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Failed to destroy environment")
	}
}
