// Package joinform binds a posted join form to the resolved fields and
// turns it into a registration submission.
package joinform

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/joinform/internal/i18n"
	"github.com/nfrund/joinform/internal/joinfields"
	"github.com/nfrund/joinform/internal/registration"
	"golang.org/x/text/message"
)

// Form is the state of a join form as rendered and re-rendered.
type Form struct {
	Fields []joinfields.Field
	// Values holds the submitted text values. Password values are never
	// echoed back.
	Values map[joinfields.FieldName]string
	MailMe bool
	// Errors holds one translated message per invalid field.
	Errors map[joinfields.FieldName]string
}

// New returns an empty form for fields.
func New(fields []joinfields.Field) *Form {
	return &Form{
		Fields: fields,
		Values: make(map[joinfields.FieldName]string),
		Errors: make(map[joinfields.FieldName]string),
	}
}

// Valid reports whether binding produced no field errors.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// Has reports whether the form renders the named field.
func (f *Form) Has(name joinfields.FieldName) bool {
	for _, field := range f.Fields {
		if field.Name == name {
			return true
		}
	}
	return false
}

// Binder validates posted values with go-playground/validator.
type Binder struct {
	validate *validator.Validate
}

// NewBinder creates a Binder.
func NewBinder() *Binder {
	return &Binder{validate: validator.New()}
}

// Bind validates the posted values against fields. The returned submission
// is only meaningful when form.Valid() is true.
func (b *Binder) Bind(fields []joinfields.Field, posted url.Values, p *message.Printer) (*Form, registration.Submission) {
	form := New(fields)
	sub := registration.Submission{Properties: make(map[string]string)}

	var password string
	for _, field := range fields {
		name := field.Name
		switch field.Widget {
		case joinfields.WidgetNotice:
			continue
		case joinfields.WidgetCheckbox:
			form.MailMe = checked(posted.Get(string(name)))
			sub.MailMe = form.MailMe
			continue
		}

		value := posted.Get(string(name))
		if field.Widget != joinfields.WidgetPassword {
			value = strings.TrimSpace(value)
			form.Values[name] = value
		}
		if name == joinfields.Password {
			password = value
		}

		if field.Rules != "" {
			if err := b.validate.Var(value, field.Rules); err != nil {
				form.Errors[name] = describe(err, p)
				continue
			}
		}

		switch name {
		case joinfields.Username:
			sub.Username = value
		case joinfields.Password, joinfields.PasswordCtl:
		default:
			sub.Properties[string(name)] = value
		}
	}

	if form.Has(joinfields.PasswordCtl) {
		if _, failed := form.Errors[joinfields.PasswordCtl]; !failed {
			ctl := posted.Get(string(joinfields.PasswordCtl))
			if err := b.validate.VarWithValue(ctl, password, "eqfield"); err != nil {
				form.Errors[joinfields.PasswordCtl] = p.Sprintf(i18n.MsgPasswordMismatch)
			}
		}
	}

	sub.Password = password
	return form, sub
}

func checked(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// describe turns the first validation failure into a translated message.
func describe(err error, p *message.Printer) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return p.Sprintf(i18n.MsgInvalidValue)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return p.Sprintf(i18n.MsgRequired)
	case "email":
		return p.Sprintf(i18n.MsgInvalidEmail)
	case "url":
		return p.Sprintf(i18n.MsgInvalidURL)
	case "min":
		n, _ := strconv.Atoi(fe.Param())
		return p.Sprintf(i18n.MsgTooShort, n)
	case "max":
		n, _ := strconv.Atoi(fe.Param())
		return p.Sprintf(i18n.MsgTooLong, n)
	default:
		return p.Sprintf(i18n.MsgInvalidValue)
	}
}
