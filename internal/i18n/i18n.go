// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package i18n holds the user-facing message catalog. The skill speaks a
// single language, but the catalog keeps every spoken string out of the
// business logic.
package i18n

import (
	"embed"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.toml
var translationFS embed.FS

var localizer *i18n.Localizer

// Init loads the embedded message catalog.
func Init() error {
	bundle := i18n.NewBundle(language.Russian)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if _, err := bundle.LoadMessageFileFS(translationFS, "translations/active.ru.toml"); err != nil {
		return err
	}

	localizer = i18n.NewLocalizer(bundle, language.Russian.String())
	return nil
}

// T returns the message for the given ID, or the ID itself when the
// catalog has no entry (never an empty string).
func T(messageID string) string {
	if localizer == nil {
		return messageID
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// TData returns the message for the given ID with template data applied.
func TData(messageID string, data map[string]any) string {
	if localizer == nil {
		return messageID
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
