// Package i18n holds the translated user-facing strings of the join form.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key; %s placeholders take
// the member's email address.
const (
	MsgUsernameUnavailable = "The login name you selected is already in use or is not valid. Please choose another."
	MsgConflict            = "Conflict error: your registration collided with another change. Please submit the form again."
	MsgMailFailed          = "Couldn't send mail"
	MsgFatalPasswordMail   = "Failed to create your account: we were unable to send your password to your email address: %s"
	MsgNonfatalPassword    = "Your account has been created, but we were unable to send your password to your email address: %s"
	MsgPasswordNotMailed   = "Your account has been created. No password email was sent to %s."
	MsgPasswordMailed      = "Your account has been created. Your login details have been sent to %s."
	MsgFixErrors           = "Please correct the indicated errors."
	MsgPasswordMismatch    = "Passwords do not match."

	// Field validation messages; %d takes the length limit.
	MsgRequired     = "This field is required."
	MsgInvalidValue = "The value is not valid."
	MsgInvalidEmail = "This is not a valid email address."
	MsgInvalidURL   = "This is not a valid URL."
	MsgTooShort     = "Minimum %d characters."
	MsgTooLong      = "Maximum %d characters."

	LabelRegistrationForm = "Registration Form"
	LabelPersonalDetails  = "Personal Details"
	LabelRegister         = "Register"
	LabelRegistered       = "Registered"
	LabelWelcome          = "Welcome! You have been registered."
	LabelRequired         = "Required"
)

var supported = []language.Tag{
	language.English,
	language.German,
	language.French,
}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[string]string{
	language.German: {
		MsgUsernameUnavailable: "Der gewählte Benutzername ist bereits vergeben oder ungültig. Bitte wählen Sie einen anderen.",
		MsgConflict:            "Konfliktfehler: Ihre Registrierung kollidierte mit einer anderen Änderung. Bitte senden Sie das Formular erneut ab.",
		MsgMailFailed:          "E-Mail konnte nicht versendet werden",
		MsgFatalPasswordMail:   "Ihr Benutzerkonto konnte nicht angelegt werden: Wir konnten Ihr Passwort nicht an Ihre E-Mail-Adresse senden: %s",
		MsgNonfatalPassword:    "Ihr Benutzerkonto wurde angelegt, aber wir konnten Ihr Passwort nicht an Ihre E-Mail-Adresse senden: %s",
		MsgPasswordNotMailed:   "Ihr Benutzerkonto wurde angelegt. Es wurde keine Passwort-E-Mail an %s gesendet.",
		MsgPasswordMailed:      "Ihr Benutzerkonto wurde angelegt. Ihre Zugangsdaten wurden an %s gesendet.",
		MsgFixErrors:           "Bitte korrigieren Sie die markierten Fehler.",
		MsgPasswordMismatch:    "Die Passwörter stimmen nicht überein.",
		MsgRequired:            "Dieses Feld ist erforderlich.",
		MsgInvalidValue:        "Der Wert ist ungültig.",
		MsgInvalidEmail:        "Dies ist keine gültige E-Mail-Adresse.",
		MsgInvalidURL:          "Dies ist keine gültige URL.",
		MsgTooShort:            "Mindestens %d Zeichen.",
		MsgTooLong:             "Höchstens %d Zeichen.",
		LabelRegistrationForm:  "Registrierungsformular",
		LabelPersonalDetails:   "Persönliche Angaben",
		LabelRegister:          "Registrieren",
		LabelRegistered:        "Registriert",
		LabelWelcome:           "Willkommen! Sie sind jetzt registriert.",
		LabelRequired:          "Erforderlich",
	},
	language.French: {
		MsgUsernameUnavailable: "Le nom d'utilisateur choisi est déjà utilisé ou n'est pas valide. Veuillez en choisir un autre.",
		MsgConflict:            "Erreur de conflit : votre inscription est entrée en conflit avec une autre modification. Veuillez soumettre le formulaire à nouveau.",
		MsgMailFailed:          "Impossible d'envoyer le courriel",
		MsgFatalPasswordMail:   "Échec de la création de votre compte : nous n'avons pas pu envoyer votre mot de passe à votre adresse : %s",
		MsgNonfatalPassword:    "Votre compte a été créé, mais nous n'avons pas pu envoyer votre mot de passe à votre adresse : %s",
		MsgPasswordNotMailed:   "Votre compte a été créé. Aucun courriel de mot de passe n'a été envoyé à %s.",
		MsgPasswordMailed:      "Votre compte a été créé. Vos identifiants ont été envoyés à %s.",
		MsgFixErrors:           "Veuillez corriger les erreurs indiquées.",
		MsgPasswordMismatch:    "Les mots de passe ne correspondent pas.",
		MsgRequired:            "Ce champ est obligatoire.",
		MsgInvalidValue:        "La valeur n'est pas valide.",
		MsgInvalidEmail:        "Cette adresse électronique n'est pas valide.",
		MsgInvalidURL:          "Cette URL n'est pas valide.",
		MsgTooShort:            "%d caractères minimum.",
		MsgTooLong:             "%d caractères maximum.",
		LabelRegistrationForm:  "Formulaire d'inscription",
		LabelPersonalDetails:   "Informations personnelles",
		LabelRegister:          "S'inscrire",
		LabelRegistered:        "Inscrit",
		LabelWelcome:           "Bienvenue ! Vous êtes maintenant inscrit.",
		LabelRequired:          "Obligatoire",
	},
}

var messages = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, text := range entries {
			// Keys are compile-time constants; a failure here is a typo in the table.
			if err := b.SetString(tag, key, text); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Match picks the best supported language for an Accept-Language header.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Printer returns a printer that formats messages in the given language.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// ForRequest returns a printer for the request's Accept-Language header.
func ForRequest(acceptLanguage string) *message.Printer {
	return Printer(Match(acceptLanguage))
}
