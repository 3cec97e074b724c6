// Package cli wires the converters and the DAT dump tool into cobra
// commands sharing one logging, localization and signal-handling setup.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/jeandeaual/go-locale"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-medview/internal/config"
	"github.com/tartampluch/go-medview/internal/convert"
)

// App holds what the commands share. Fields are replaceable in tests.
type App struct {
	Out io.Writer // Progress lines and dumps
	Err io.Writer // Logs and cobra errors

	Fetcher convert.Fetcher

	// PlatformLocale returns the OS locale name, e.g. "en-US".
	PlatformLocale func() (string, error)

	// LogDir overrides the user cache directory holding the log file.
	LogDir string

	languages []string
	localizer *i18n.Localizer
	logFile   io.Closer
}

// NewApp returns an App bound to the process streams and the real platform.
func NewApp() *App {
	return &App{
		Out:            os.Stdout,
		Err:            os.Stderr,
		Fetcher:        convert.NewHTTPFetcher(),
		PlatformLocale: locale.GetLocale,
	}
}

// Main builds a command, runs it with args and returns the exit code.
// os.Exit does not run defers, so the caller exits with the returned code
// after the log file has been closed here.
func Main(newCmd func(*App) *cobra.Command, args []string) int {
	app := NewApp()
	defer app.Close()

	// Cancel on SIGINT (Ctrl+C) or SIGTERM. The converter finalizes the
	// open DAT file before returning.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return app.Execute(ctx, newCmd(app), args)
}

// Execute runs cmd and maps its outcome to an exit code.
func (a *App) Execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	// cobra falls back to os.Args for a nil slice.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(a.Out)
	cmd.SetErr(a.Err)

	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// Close releases the log file.
func (a *App) Close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// newRoot returns a command with the flags and start-up hooks every binary
// shares: --debug, --version, logging and message catalogs.
func (a *App) newRoot(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          use,
		Short:        short,
		Version:      config.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, err := cmd.Flags().GetBool(config.FlagDebug)
			if err != nil {
				return err
			}
			a.setupLogging(debug)
			logStartupInfo()
			a.setupI18n()
			return nil
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf(config.MsgVersionTemplate, runtime.GOOS, runtime.GOARCH))
	cmd.PersistentFlags().Bool(config.FlagDebug, false, config.FlagDescDebug)
	return cmd
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuildDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog handler writing to a.Err and, when the
// cache directory is usable, to a log file truncated on every run.
func (a *App) setupLogging(debugMode bool) {
	writers := []io.Writer{a.Err}

	if logPath, err := a.getLogFilePath(); err == nil {
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			a.Close()
			a.logFile = f
		} else {
			fmt.Fprintf(a.Err, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))
}

// getLogFilePath determines the platform-specific cache directory for logs.
func (a *App) getLogFilePath() (string, error) {
	appDir := a.LogDir
	if appDir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
		}
		appDir = filepath.Join(cacheDir, config.AppID)
	}

	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(appDir, config.LogFileName), nil
}
