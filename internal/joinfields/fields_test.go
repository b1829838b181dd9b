package joinfields

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		base     FieldOrder
		canSetPW bool
		want     FieldOrder
	}{
		{
			name:     "empty base with self-service password",
			base:     FieldOrder{},
			canSetPW: true,
			want:     FieldOrder{Username, Password, PasswordCtl, MailMe},
		},
		{
			name:     "empty base without self-service password",
			base:     nil,
			canSetPW: false,
			want:     FieldOrder{Username},
		},
		{
			name:     "username prepended when missing",
			base:     FieldOrder{"fullname", "email"},
			canSetPW: false,
			want:     FieldOrder{Username, "fullname", "email"},
		},
		{
			name:     "credentials inserted right after a configured username",
			base:     FieldOrder{"fullname", Username, "email"},
			canSetPW: true,
			want:     FieldOrder{"fullname", Username, Password, PasswordCtl, MailMe, "email"},
		},
		{
			name:     "configured password keeps its position",
			base:     FieldOrder{Username, "email", Password},
			canSetPW: true,
			want:     FieldOrder{Username, "email", Password, PasswordCtl, MailMe},
		},
		{
			name:     "configured mail_me is not duplicated",
			base:     FieldOrder{MailMe, Username},
			canSetPW: true,
			want:     FieldOrder{MailMe, Username, Password, PasswordCtl},
		},
		{
			name:     "password fields removed without self-service",
			base:     FieldOrder{Username, Password, PasswordCtl, MailMe, "email"},
			canSetPW: false,
			want:     FieldOrder{Username, MailMe, "email"},
		},
		{
			name:     "duplicates collapsed",
			base:     FieldOrder{"email", "email", Username},
			canSetPW: false,
			want:     FieldOrder{"email", Username},
		},
		{
			name:     "unknown ids are kept",
			base:     FieldOrder{"favourite_colour"},
			canSetPW: false,
			want:     FieldOrder{Username, "favourite_colour"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.base, tt.canSetPW)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Select() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelect_Idempotent(t *testing.T) {
	bases := []FieldOrder{
		{},
		{"fullname", "email"},
		{Username, Password},
		{"email", MailMe, PasswordCtl, "fullname"},
		{Password, PasswordCtl, Username},
	}
	for _, base := range bases {
		for _, canSet := range []bool{true, false} {
			once := Select(base, canSet)
			twice := Select(once, canSet)
			assert.Equal(t, once, twice, "base=%v canSet=%v", base, canSet)
		}
	}
}

func TestSelect_Invariants(t *testing.T) {
	bases := []FieldOrder{
		{},
		{"fullname"},
		{"email", Password, "fullname"},
		{MailMe},
	}
	for _, base := range bases {
		withPW := Select(base, true)
		assert.True(t, withPW.Contains(Username))
		assert.Less(t, withPW.Index(Password), withPW.Index(PasswordCtl))
		assert.Less(t, withPW.Index(PasswordCtl), withPW.Index(MailMe))

		withoutPW := Select(base, false)
		assert.True(t, withoutPW.Contains(Username))
		assert.False(t, withoutPW.Contains(Password))
		assert.False(t, withoutPW.Contains(PasswordCtl))

		if !base.Contains(Username) {
			assert.Equal(t, Username, withPW[0])
			assert.Equal(t, Username, withoutPW[0])
		}
	}
}

func TestSelect_DoesNotModifyInput(t *testing.T) {
	base := FieldOrder{"email", Password, PasswordCtl}
	_ = Select(base, false)
	assert.Equal(t, FieldOrder{"email", Password, PasswordCtl}, base)
}

func TestParseOrder(t *testing.T) {
	got := ParseOrder([]string{"username", "", "email", "username"})
	assert.Equal(t, FieldOrder{Username, Email}, got)
}
