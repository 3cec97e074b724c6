package cli

import (
	"log/slog"

	"github.com/tartampluch/go-medview/internal/config"
	"github.com/tartampluch/go-medview/internal/fuzzytime"
	"github.com/zalando/go-keyring"
)

// platformDatePattern derives the date pattern deciding day-first vs
// month-first from the OS locale. Failures fall back to the C locale.
func (a *App) platformDatePattern() string {
	if a.PlatformLocale == nil {
		return fuzzytime.POSIXDatePattern
	}

	name, err := a.PlatformLocale()
	if err != nil {
		slog.Debug(config.MsgLocaleDetected,
			config.LogKeyComponent, config.CompLocale,
			config.LogKeyError, err)
		return fuzzytime.POSIXDatePattern
	}

	pattern := fuzzytime.DatePatternForLocale(name)
	slog.Debug(config.MsgLocaleDetected,
		config.LogKeyComponent, config.CompLocale,
		config.LogKeyLocale, name,
		config.LogKeyPattern, pattern,
		config.LogKeyDayFirst, fuzzytime.IsDayFirst(pattern))
	return pattern
}

// remotePassword returns the password for a remote input. The environment
// wins; otherwise the OS keyring is asked for user's entry. With save set,
// a password from the environment is stored for next time.
func remotePassword(user, fromEnv string, save bool) string {
	if fromEnv != "" {
		if save && user != "" {
			if err := keyring.Set(config.KeyringService, user, fromEnv); err != nil {
				slog.Warn(config.MsgPassSaveFail,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyUser, user,
					config.LogKeyError, err)
			}
		}
		return fromEnv
	}
	if user == "" {
		return ""
	}

	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Warn(config.MsgPassFail,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyUser, user,
			config.LogKeyError, err)
		return ""
	}
	return pass
}
