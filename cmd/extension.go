package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

const (
	EnvConfig   = "FIFO_CONFIG"
	EnvCurrency = "FIFO_CURRENCY"
	EnvStyle    = "FIFO_STYLE"
	EnvVerbose  = "FIFO_VERBOSE"
)

// RunExtension attempts to find and execute an external fifo-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found. The settings are only loaded
// once an extension is found.
func RunExtension(ctx context.Context, subcommand string, args []string) (bool, int) {
	path, ok := findExtension(subcommand)
	if !ok {
		return false, 0
	}

	cfg, logger, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, int(subcommands.ExitUsageError)
	}
	defer logger.Sync()

	ext := extension{
		cfg:    cfg,
		config: globalFlags().Config,
		log:    logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	return true, ext.run(ctx, path, args)
}

// findExtension returns the path of the fifo-<subcommand> executable in PATH.
func findExtension(subcommand string) (string, bool) {
	path, err := exec.LookPath("fifo-" + subcommand)
	if err != nil {
		return "", false
	}
	return path, true
}

// extension runs external commands with the application settings.
type extension struct {
	cfg    Config
	config string // configuration file, if any
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// run executes the extension at path and returns its exit code.
func (e extension) run(ctx context.Context, path string, args []string) int {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	// Pass the settings as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvCurrency+"="+e.cfg.Currency)
	cmd.Env = append(cmd.Env, EnvStyle+"="+e.cfg.Style)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(e.cfg.Log.Level == "debug"))
	if e.config != "" {
		cmd.Env = append(cmd.Env, EnvConfig+"="+e.config)
	}

	e.log.Debug("running external command", zap.String("path", path), zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) && exitError.ExitCode() >= 0 {
			return exitError.ExitCode()
		}
		fmt.Fprintf(e.stderr, "Error executing external command %q: %v\n", path, err)
		return 1
	}
	return 0
}
