package hooks

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/bimmerbailey/logalizer/internal/errors"
	"github.com/google/shlex"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Runner executes configured commands one after another.
type Runner struct {
	Stdout io.Writer // Defaults to os.Stdout
	Stderr io.Writer // Defaults to os.Stderr
	Logger *zerolog.Logger
}

// Run executes each command in order. A failing command is logged and the
// remaining commands still run. It returns the number of failures.
func (r *Runner) Run(ctx context.Context, commands []string) int {
	logger := log.With().Str("component", "hooks").Logger()
	if r.Logger != nil {
		logger = *r.Logger
	}

	failures := 0
	for _, command := range commands {
		if ctx.Err() != nil {
			logger.Warn().Str("command", command).Msg("Skipping command, run cancelled")
			failures++
			continue
		}
		if err := r.run(ctx, command); err != nil {
			logger.Error().Err(err).Str("command", command).Msg("Command failed")
			failures++
			continue
		}
		logger.Debug().Str("command", command).Msg("Command finished")
	}
	return failures
}

func (r *Runner) run(ctx context.Context, command string) error {
	args, err := ParseCommand(command)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, errors.ErrCommand, "run command").WithDetail("command", command)
	}
	return nil
}

// ParseCommand splits command into arguments using shell quoting rules.
func ParseCommand(command string) ([]string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, errors.New(errors.ErrCommand, "command cannot be empty")
	}
	if strings.ContainsAny(command, "\r\n") {
		return nil, errors.New(errors.ErrCommand, "command cannot contain newlines")
	}

	args, err := shlex.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCommand, "parse command %q", command)
	}
	if len(args) == 0 {
		return nil, errors.New(errors.ErrCommand, "command cannot be empty after parsing")
	}
	return args, nil
}
