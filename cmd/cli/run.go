package cli

import (
	"context"
	"os"

	"github.com/theblitlabs/venvctl/internal/shell"
	"github.com/theblitlabs/venvctl/internal/venv"
	"github.com/theblitlabs/venvctl/pkg/logger"
)

// ScriptRequest describes one `venvctl run` invocation. Source, when
// non-empty, is inline source text and Args are the script's arguments;
// otherwise Args[0] is the script path and the rest its arguments.
type ScriptRequest struct {
	Dir       string
	Source    string
	Args      []string
	CheckExit bool
}

func RunScript(configPath string, req ScriptRequest) {
	log := logger.WithComponent("cli")
	opts := loadOptions(configPath)

	env := venv.New(req.Dir, opts...)

	var shellOpts []shell.Option
	if req.CheckExit {
		shellOpts = append(shellOpts, shell.WithExitCheck())
	}

	var result *shell.Result
	var err error
	if req.Source != "" {
		result, err = env.RunSource(context.Background(), req.Source, req.Args, shellOpts...)
	} else {
		if len(req.Args) == 0 {
			log.Fatal().Msg("No script path given")
		}
		result, err = env.Run(context.Background(), req.Args[0], req.Args[1:], shellOpts...)
	}
	if err != nil {
		log.Fatal().Err(err).Str("dir", req.Dir).Msg("Script execution failed")
	}

	os.Exit(result.ExitCode)
}
