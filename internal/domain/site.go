package domain

// SiteConfig holds the site settings the join form depends on.
type SiteConfig struct {
	// JoinFormFields is the ordered list of fields configured for the form.
	JoinFormFields []string `yaml:"join_form_fields" json:"join_form_fields"`

	// ValidateEmail forces generated passwords to be sent by email. When it
	// is set members cannot choose their own password.
	ValidateEmail bool `yaml:"validate_email" json:"validate_email"`
}

// CanSetOwnPassword reports whether members choose their own password.
func (c SiteConfig) CanSetOwnPassword() bool {
	return !c.ValidateEmail
}

// SiteConfigProvider returns the current site settings.
type SiteConfigProvider interface {
	Current() SiteConfig
}
