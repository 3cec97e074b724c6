package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tartampluch/go-medview/internal/config"
	"github.com/tartampluch/go-medview/internal/convert"
	"github.com/tartampluch/go-medview/internal/fuzzytime"
)

// NewEmayCommand is the emay2medview root command.
func NewEmayCommand(app *App) *cobra.Command {
	return newConvertCommand(app, config.CmdEmay, config.ShortEmay, config.FormatEmay)
}

// NewO2InsightCommand is the o2insight2medview root command. It defaults to
// the O2 Insight format and ignores CSV_FORMAT.
func NewO2InsightCommand(app *App) *cobra.Command {
	return newConvertCommand(app, config.CmdO2Insight, config.ShortO2Insight, config.FormatO2Insight)
}

type binding struct {
	key  string
	flag string
	env  string
}

func newConvertCommand(app *App, name, short, defaultFormat string) *cobra.Command {
	v := viper.New()
	cmd := app.newRoot(name+config.UseConvert, short)
	cmd.Args = cobra.ExactArgs(1)

	f := cmd.Flags()
	f.StringP(config.FlagOutput, config.FlagOutputShort, "", config.FlagDescOutput)
	f.StringP(config.FlagInputFormat, config.FlagInputFormatShort, defaultFormat, config.FlagDescInputFormat)
	f.Int(config.FlagTimeOffset, 0, config.FlagDescTimeOffset)
	f.String(config.FlagDateFormat, "", config.FlagDescDateFormat)
	f.String(config.FlagTimeFormat, "", config.FlagDescTimeFormat)
	f.String(config.FlagLocaleDateFormat, "", config.FlagDescLocaleDateFormat)
	f.String(config.FlagUser, "", config.FlagDescUser)
	f.Bool(config.FlagSavePassword, false, config.FlagDescSavePassword)

	formatEnv := config.EnvInputFormat
	if defaultFormat != config.FormatEmay {
		formatEnv = ""
	}

	// A flag set on the command line wins over the environment, which wins
	// over the flag default.
	bindings := []binding{
		{config.KeyOutput, config.FlagOutput, ""},
		{config.KeyInputFormat, config.FlagInputFormat, formatEnv},
		{config.KeyTimeOffset, config.FlagTimeOffset, ""},
		{config.KeyDateFormat, config.FlagDateFormat, config.EnvDateFormat},
		{config.KeyTimeFormat, config.FlagTimeFormat, config.EnvTimeFormat},
		{config.KeyLocaleDateFormat, config.FlagLocaleDateFormat, config.EnvLocaleDateFormat},
		{config.KeyUser, config.FlagUser, ""},
		{config.KeySavePassword, config.FlagSavePassword, ""},
		{config.KeyPassword, "", config.EnvPassword},
	}
	for _, b := range bindings {
		if b.flag != "" {
			if err := v.BindPFlag(b.key, f.Lookup(b.flag)); err != nil {
				panic(err)
			}
		}
		if b.env != "" {
			if err := v.BindEnv(b.key, b.env); err != nil {
				panic(err)
			}
		}
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.runConvert(cmd.Context(), v, args[0])
	}
	return cmd
}

func (a *App) runConvert(ctx context.Context, v *viper.Viper, input string) error {
	format := strings.ToLower(v.GetString(config.KeyInputFormat))
	if !slices.Contains(config.SupportedFormats, format) {
		return fmt.Errorf("%s: %q", config.ErrInputFormat, format)
	}

	pattern := v.GetString(config.KeyLocaleDateFormat)
	if pattern == "" {
		pattern = a.platformDatePattern()
	}
	parser := fuzzytime.NewParser(fuzzytime.Options{
		DateOverride: v.GetString(config.KeyDateFormat),
		TimeOverride: v.GetString(config.KeyTimeFormat),
		DayFirst:     fuzzytime.IsDayFirst(pattern),
	})

	job := convert.Job{
		Input:      input,
		Output:     v.GetString(config.KeyOutput),
		Format:     format,
		TimeOffset: time.Duration(v.GetInt(config.KeyTimeOffset)) * time.Second,
	}
	if convert.IsRemote(input) {
		job.User = v.GetString(config.KeyUser)
		job.Pass = remotePassword(job.User, v.GetString(config.KeyPassword), v.GetBool(config.KeySavePassword))
	}
	if job.Output == "" {
		job.Output = convert.DefaultOutputPath(input)
		a.printf(config.TKeyConverting, map[string]any{"Input": input, "Output": job.Output})
	}

	c := &convert.Converter{Parser: parser, Fetcher: a.Fetcher}
	stats, err := c.Run(ctx, job)
	if err != nil {
		return err
	}

	if stats.Skipped+stats.Rejected > 0 {
		a.printf(config.TKeySkipped, map[string]any{"Skipped": stats.Skipped, "Rejected": stats.Rejected})
	}
	a.printf(config.TKeySummary, map[string]any{"Written": stats.Written, "Files": len(stats.Files)})
	return nil
}

// printf writes one localized line to a.Out.
func (a *App) printf(key string, data map[string]any) {
	msg := a.Msg(key, data)
	if msg == key && key == config.TKeyConverting {
		fmt.Fprintf(a.Out, config.FallbackConverting, data["Input"], data["Output"])
		return
	}
	fmt.Fprintln(a.Out, msg)
}
