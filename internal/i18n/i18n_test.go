package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	assert.Equal(t, language.English, Match(""))
	assert.Equal(t, language.German, Match("de-DE,de;q=0.9,en;q=0.8"))
	assert.Equal(t, language.French, Match("fr-CH, fr;q=0.9"))
	assert.Equal(t, language.English, Match("ja"))
	assert.Equal(t, language.English, Match("not a header;;;"))
}

func TestPrinter(t *testing.T) {
	en := Printer(language.English)
	assert.Equal(t,
		"Failed to create your account: we were unable to send your password to your email address: jane@example.com",
		en.Sprintf(MsgFatalPasswordMail, "jane@example.com"))

	de := Printer(language.German)
	assert.Equal(t, "Registrieren", de.Sprintf(LabelRegister))
	assert.Equal(t,
		"Ihr Benutzerkonto wurde angelegt. Ihre Zugangsdaten wurden an jane@example.com gesendet.",
		de.Sprintf(MsgPasswordMailed, "jane@example.com"))
}

func TestCatalogIsComplete(t *testing.T) {
	keys := []string{
		MsgUsernameUnavailable, MsgConflict, MsgMailFailed, MsgFatalPasswordMail,
		MsgNonfatalPassword, MsgPasswordNotMailed, MsgPasswordMailed, MsgFixErrors,
		MsgPasswordMismatch, LabelRegistrationForm, LabelPersonalDetails, LabelRegister,
		LabelRegistered, LabelWelcome, LabelRequired, MsgRequired, MsgInvalidValue,
		MsgInvalidEmail, MsgInvalidURL, MsgTooShort, MsgTooLong,
	}
	for tag, entries := range translations {
		for _, key := range keys {
			_, ok := entries[key]
			assert.True(t, ok, "missing %s translation for %q", tag, key)
		}
	}
}
