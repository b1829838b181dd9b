// Package joinfields computes which fields the join form renders.
//
// The base order comes from the site setting join_form_fields. Select
// enforces the presence and ordering of the credential fields, and Resolve
// maps the resulting names onto renderable Field definitions.
package joinfields

import "slices"

// FieldName identifies a form field.
type FieldName string

// Field names the selector knows about. Every other name is opaque to it.
const (
	Username    FieldName = "username"
	Password    FieldName = "password"
	PasswordCtl FieldName = "password_ctl"
	MailMe      FieldName = "mail_me"
)

// FieldOrder is an ordered sequence of unique field names.
type FieldOrder []FieldName

// Contains reports whether name is part of the order.
func (o FieldOrder) Contains(name FieldName) bool {
	return slices.Contains(o, name)
}

// Index returns the position of name, or -1.
func (o FieldOrder) Index(name FieldName) int {
	return slices.Index(o, name)
}

// Strings returns the order as plain strings.
func (o FieldOrder) Strings() []string {
	out := make([]string, len(o))
	for i, name := range o {
		out[i] = string(name)
	}
	return out
}

// ParseOrder converts configured field ids into a FieldOrder, dropping
// blanks and repeated ids.
func ParseOrder(ids []string) FieldOrder {
	order := make(FieldOrder, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		order = appendUnique(order, FieldName(id))
	}
	return order
}

// Select returns the render order for the join form.
//
// username is always present. When members can set their own password,
// password, password_ctl and mail_me are inserted after username in that
// order if the site did not configure them. Otherwise password and
// password_ctl are removed. Unknown names are kept; the caller drops them
// when resolving fields. The input is never modified.
func Select(base FieldOrder, canSetOwnPassword bool) FieldOrder {
	fields := make(FieldOrder, 0, len(base)+4)
	for _, name := range base {
		fields = appendUnique(fields, name)
	}

	if !fields.Contains(Username) {
		fields = slices.Insert(fields, 0, Username)
	}

	if !canSetOwnPassword {
		return slices.DeleteFunc(fields, func(name FieldName) bool {
			return name == Password || name == PasswordCtl
		})
	}

	// Each insertion depends on the position left by the previous one.
	fields = insertAfter(fields, Username, Password)
	fields = insertAfter(fields, Password, PasswordCtl)
	fields = insertAfter(fields, PasswordCtl, MailMe)
	return fields
}

func insertAfter(fields FieldOrder, anchor, name FieldName) FieldOrder {
	if fields.Contains(name) {
		return fields
	}
	return slices.Insert(fields, fields.Index(anchor)+1, name)
}

func appendUnique(fields FieldOrder, name FieldName) FieldOrder {
	if fields.Contains(name) {
		return fields
	}
	return append(fields, name)
}
