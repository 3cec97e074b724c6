package cli

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-medview/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// setupI18n loads every embedded active.<lang>.json catalog and picks the
// language closest to the platform locale.
func (a *App) setupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	a.languages = detectedLangs
	a.localizer = i18n.NewLocalizer(bundle, a.language())
}

// language matches the platform locale against the loaded catalogs. The
// default language wins when nothing matches.
func (a *App) language() string {
	if a.PlatformLocale == nil {
		return config.DefaultLanguage
	}
	name, err := a.PlatformLocale()
	if err != nil || name == "" {
		return config.DefaultLanguage
	}

	tags := []language.Tag{language.Make(config.DefaultLanguage)}
	for _, l := range a.languages {
		if l != config.DefaultLanguage {
			tags = append(tags, language.Make(l))
		}
	}

	tag, _ := language.MatchStrings(language.NewMatcher(tags), strings.ReplaceAll(name, "_", "-"))
	base, _ := tag.Base()
	return base.String()
}

// Msg translates key with optional template data. Missing keys come back
// unchanged.
func (a *App) Msg(key string, data map[string]any) string {
	if a.localizer == nil {
		return key
	}
	msg, err := a.localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
