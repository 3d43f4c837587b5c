package i18n

import (
	"embed"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"evenza/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var _ output.T = (*Translator)(nil)

var supported = []language.Tag{language.French, language.English}

// Translator serves the embedded French and English catalogs.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	matcher         language.Matcher
	localizers      sync.Map
}

// NewTranslator loads the catalogs with defaultLocale as the fallback
// language. An unparsable locale falls back to French.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.French
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.fr.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Error().Err(err).Str("file", file).Msg("i18n: load failed")
		}
	}

	// The matcher falls back to its first tag, so the default goes first.
	tags := []language.Tag{tag}
	for _, t := range supported {
		if t != tag {
			tags = append(tags, t)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		matcher:         language.NewMatcher(tags),
	}
}

// T renders key in locale, then in the default language. A key that has no
// message in either is returned as is so callers always get some text.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		log.Debug().Err(err).Str("key", key).Str("locale", locale).Msg("i18n: missing message")
		return key
	}
	return msg
}

func (t *Translator) localizer(locale string) *i18n.Localizer {
	if l, ok := t.localizers.Load(locale); ok {
		return l.(*i18n.Localizer)
	}
	langs := []string{t.defaultLanguage.String()}
	if locale != "" {
		langs = append([]string{locale}, langs...)
	}
	l, _ := t.localizers.LoadOrStore(locale, i18n.NewLocalizer(t.bundle, langs...))
	return l.(*i18n.Localizer)
}

// Negotiate picks the supported locale best matching an Accept-Language
// header. An empty or unparsable header yields the default locale.
func (t *Translator) Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.base(t.defaultLanguage)
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return t.base(t.defaultLanguage)
	}
	tag, _, _ := t.matcher.Match(prefs...)
	return t.base(tag)
}

func (t *Translator) base(tag language.Tag) string {
	b, _ := tag.Base()
	return b.String()
}
