package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ncruces/go-strftime"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-medview/internal/config"
	"github.com/tartampluch/go-medview/internal/medview"
)

// NewDumpCommand is the medviewdump root command. It prints the header
// count and the records of each DAT file given.
func NewDumpCommand(app *App) *cobra.Command {
	cmd := app.newRoot(config.CmdDump+config.UseDump, config.ShortDump)
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.Flags().String(config.FlagDumpTimeFormat, config.DefaultDumpTimeFormat, config.FlagDescDumpTimeFormat)
	cmd.Flags().Bool(config.FlagDumpCount, false, config.FlagDescDumpCount)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		layout, err := cmd.Flags().GetString(config.FlagDumpTimeFormat)
		if err != nil {
			return err
		}
		countOnly, err := cmd.Flags().GetBool(config.FlagDumpCount)
		if err != nil {
			return err
		}

		for _, name := range args {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if err := dumpFile(app.Out, name, layout, countOnly); err != nil {
				return err
			}
		}
		return nil
	}
	return cmd
}

func dumpFile(out io.Writer, name, layout string, countOnly bool) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDumpOpen, err)
	}
	defer func() { _ = f.Close() }()

	r, err := medview.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s %s: %w", config.ErrDumpRead, name, err)
	}
	slog.Debug(config.MsgDumpFile,
		config.LogKeyComponent, config.CompDump,
		config.LogKeyFile, name,
		config.LogKeyRows, r.Header().Count,
	)
	fmt.Fprintf(out, config.DumpHeaderFormat, name, r.Header().Count)
	if countOnly {
		return nil
	}

	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", config.ErrDumpRead, name, err)
		}
		fmt.Fprintf(out, config.DumpLineFormat, strftime.Format(layout, rec.Timestamp), rec.SpO2, rec.PulseRate)
	}
}
