package cli

import (
	"github.com/theblitlabs/venvctl/internal/config"
	"github.com/theblitlabs/venvctl/internal/venv"
	"github.com/theblitlabs/venvctl/pkg/logger"
)

// loadOptions turns the config file (or defaults) into environment options.
func loadOptions(configPath string) []venv.Option {
	log := logger.WithComponent("cli")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("Failed to load config")
	}

	return []venv.Option{
		venv.WithTool(cfg.Venv.Tool),
		venv.WithInterpreter(cfg.Venv.Interpreter),
		venv.WithPackageManager(cfg.Venv.PackageManager),
		venv.WithShell(cfg.Venv.Shell),
	}
}
