package joinfields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(fields []Field) []FieldName {
	out := make([]FieldName, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

func TestResolve_DropsUnknownFields(t *testing.T) {
	fields := Resolve(FieldOrder{Username, "favourite_colour", Email}, false)
	assert.Equal(t, []FieldName{Username, Email}, names(fields))
}

func TestResolve_JoinHelpTexts(t *testing.T) {
	fields := Resolve(FieldOrder{Fullname, Email}, false)
	require.Len(t, fields, 2)
	assert.Equal(t, fullnameJoinHelp, fields[0].Description)
	assert.Equal(t, emailJoinHelp, fields[1].Description)
}

func TestResolve_MailMeWidget(t *testing.T) {
	t.Run("checkbox when members choose their password", func(t *testing.T) {
		fields := Resolve(FieldOrder{MailMe}, false)
		require.Len(t, fields, 1)
		assert.Equal(t, WidgetCheckbox, fields[0].Widget)
		assert.False(t, fields[0].ReadOnly)
	})

	t.Run("notice when email validation is mandatory", func(t *testing.T) {
		fields := Resolve(FieldOrder{MailMe}, true)
		require.Len(t, fields, 1)
		assert.Equal(t, WidgetNotice, fields[0].Widget)
		assert.True(t, fields[0].ReadOnly)
		assert.Empty(t, fields[0].Title)
		assert.Equal(t, mailMeNotice, fields[0].Description)
	})
}

func TestResolve_DoesNotLeakIntoSchema(t *testing.T) {
	_ = Resolve(FieldOrder{MailMe, Email}, true)
	known := Known()
	assert.Equal(t, WidgetCheckbox, known[MailMe].Widget)
	assert.NotEqual(t, emailJoinHelp, known[Email].Description)
}

func TestForSite(t *testing.T) {
	fields := ForSite([]string{"fullname", "email"}, false)
	assert.Equal(t,
		[]FieldName{Username, Password, PasswordCtl, MailMe, Fullname, Email},
		names(fields))

	fields = ForSite([]string{"fullname", "email", "password"}, true)
	assert.Equal(t, []FieldName{Username, Fullname, Email}, names(fields))
}
