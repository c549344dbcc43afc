package cli

import (
	"context"
	"fmt"

	"github.com/theblitlabs/venvctl/internal/venv"
	"github.com/theblitlabs/venvctl/pkg/logger"
)

func RunCreate(configPath, dir string) {
	log := logger.WithComponent("cli")
	opts := loadOptions(configPath)

	env, err := venv.Create(context.Background(), dir, opts...)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create environment")
	}

	fmt.Println(env.Dir())
}
