// Package i18n translates user-facing messages. Arabic and English
// catalogs are embedded; Arabic is the default.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// HeaderLang overrides Accept-Language when present.
const HeaderLang = "X-Lang"

//go:embed locales/*.toml
var locales embed.FS

// Supported lists the languages with an embedded catalog, default first.
var Supported = []language.Tag{language.Arabic, language.English}

// Translator resolves message IDs into localized text.
type Translator struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
	tags        []language.Tag
	matcher     language.Matcher
}

// New loads the embedded catalogs. defaultLang is used when a request names
// no supported language.
func New(defaultLang string) (*Translator, error) {
	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("i18n: default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(def)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", f, err)
		}
	}

	// Matcher prefers the default language on ties.
	tags := []language.Tag{def}
	for _, t := range Supported {
		if t != def {
			tags = append(tags, t)
		}
	}

	return &Translator{
		bundle:      bundle,
		defaultLang: def,
		tags:        tags,
		matcher:     language.NewMatcher(tags),
	}, nil
}

// DefaultLanguage returns the fallback language as a base code.
func (t *Translator) DefaultLanguage() string {
	base, _ := t.defaultLang.Base()
	return base.String()
}

// Localize returns the message for msgID in lang, falling back to the
// default language and finally to msgID itself.
func (t *Translator) Localize(lang, msgID string, data map[string]any) string {
	localizer := i18n.NewLocalizer(t.bundle, lang, t.defaultLang.String())

	lc := &i18n.LocalizeConfig{MessageID: msgID}
	if len(data) > 0 {
		lc.TemplateData = data
	}

	msg, err := localizer.Localize(lc)
	if err != nil {
		return msgID
	}
	return msg
}

// Has reports whether msgID is defined for lang without falling back.
func (t *Translator) Has(msgID, lang string) bool {
	_, tag, err := i18n.NewLocalizer(t.bundle, lang).LocalizeWithTag(&i18n.LocalizeConfig{MessageID: msgID})
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	want, _ := language.Make(lang).Base()
	return base == want
}

// Negotiate picks the best supported language for a raw header value.
func (t *Translator) Negotiate(accept string) string {
	tags, _, err := language.ParseAcceptLanguage(strings.TrimSpace(accept))
	if err != nil || len(tags) == 0 {
		return t.DefaultLanguage()
	}

	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.DefaultLanguage()
	}
	base, _ := t.tags[idx].Base()
	return base.String()
}

// LanguageFromRequest reads X-Lang, then Accept-Language.
func (t *Translator) LanguageFromRequest(r *http.Request) string {
	if lang := r.Header.Get(HeaderLang); lang != "" {
		return t.Negotiate(lang)
	}
	return t.Negotiate(r.Header.Get("Accept-Language"))
}
