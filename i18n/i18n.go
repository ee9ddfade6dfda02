// Package i18n localises user-facing texts (alert messages, report
// headers, request notifications) from embedded locale files keyed by
// stable message IDs.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/warp/hourbank/timesheet"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale is used when neither the request nor the config names one.
const DefaultLocale = "en"

type ctxKey struct{}

// Translator resolves message IDs against the embedded bundle. Safe for
// concurrent use once built.
type Translator struct {
	bundle        *goi18n.Bundle
	matcher       language.Matcher
	defaultLocale string
}

// New loads every embedded locale file.
func New(defaultLocale string) (*Translator, error) {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	if _, err := language.Parse(defaultLocale); err != nil {
		return nil, fmt.Errorf("i18n: invalid default locale %q: %w", defaultLocale, err)
	}

	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", e.Name(), err)
		}
	}
	return &Translator{
		bundle:        bundle,
		matcher:       language.NewMatcher(bundle.LanguageTags()),
		defaultLocale: defaultLocale,
	}, nil
}

// Languages lists the loaded locales.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// Match picks the loaded locale that best serves an Accept-Language
// header. An empty or unservable header yields the default locale.
func (t *Translator) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLocale
	}
	_, index, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return t.defaultLocale
	}
	return t.Languages()[index].String()
}

// T translates messageID for the given locales, most preferred first.
// Each entry may be a tag ("pt-BR") or a full Accept-Language header.
// Unknown IDs come back unchanged.
func (t *Translator) T(messageID string, locales ...string) string {
	langs := make([]string, 0, len(locales)+1)
	langs = append(langs, locales...)
	l := goi18n.NewLocalizer(t.bundle, append(langs, t.defaultLocale)...)
	msg, err := l.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// TC translates using the locale carried by ctx.
func (t *Translator) TC(ctx context.Context, messageID string) string {
	return t.TD(ctx, messageID, nil)
}

// TD is TC for templated messages.
func (t *Translator) TD(ctx context.Context, messageID string, data map[string]any) string {
	l := goi18n.NewLocalizer(t.bundle, LocaleFromContext(ctx), t.defaultLocale)
	msg, err := l.Localize(&goi18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		return messageID
	}
	return msg
}

// Alerts returns a copy of alerts with messages in the locale of ctx.
func (t *Translator) Alerts(ctx context.Context, alerts []timesheet.Alert) []timesheet.Alert {
	out := make([]timesheet.Alert, len(alerts))
	for i, a := range alerts {
		a.Message = t.TC(ctx, string(a.Code))
		out[i] = a
	}
	return out
}

// Notification renders the title and body of a request notification.
func (t *Translator) Notification(ctx context.Context, n timesheet.Notification) (title, message string) {
	data := map[string]any{
		"Actor": n.ActorName,
		"Type":  t.TC(ctx, "request.type."+string(n.RequestType)),
	}
	return t.TC(ctx, string(n.Code)+".title"), t.TD(ctx, string(n.Code), data)
}

// WithLocale returns a new context carrying the given locale (e.g. "pt-BR").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext extracts the locale from ctx, or "" if unset.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}
