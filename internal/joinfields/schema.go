package joinfields

// Widget selects how a field is rendered.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextArea Widget = "textarea"
	WidgetPassword Widget = "password"
	WidgetCheckbox Widget = "checkbox"
	// WidgetNotice renders the description only; the field takes no input.
	WidgetNotice Widget = "notice"
)

// Field is a renderable form field.
type Field struct {
	Name        FieldName
	Title       string
	Description string
	Widget      Widget
	Required    bool
	ReadOnly    bool
	// Rules is a go-playground/validator tag applied to the submitted value.
	Rules string
}

// Additional user data fields a site may add to join_form_fields.
const (
	Fullname  FieldName = "fullname"
	Email     FieldName = "email"
	HomePage  FieldName = "home_page"
	Location  FieldName = "location"
	Biography FieldName = "description"
)

// JoinConstants are the join-schema ids offered by the site settings
// vocabulary for join_form_fields, next to the user data fields.
var JoinConstants = FieldOrder{Username, Password, MailMe}

// userDataSchema holds the member properties fields.
var userDataSchema = []Field{
	{
		Name:        Fullname,
		Title:       "Full Name",
		Description: "Enter full name, eg. John Smith.",
		Widget:      WidgetText,
		Rules:       "omitempty,max=200",
	},
	{
		Name:        Email,
		Title:       "E-mail",
		Description: "We will use this address if you need to recover your password.",
		Widget:      WidgetText,
		Required:    true,
		Rules:       "required,email",
	},
	{
		Name:        HomePage,
		Title:       "Home page",
		Description: "The URL for your external home page, if you have one.",
		Widget:      WidgetText,
		Rules:       "omitempty,url",
	},
	{
		Name:        Location,
		Title:       "Location",
		Description: "Your location - either city and country - or in a company setting, where your office is located.",
		Widget:      WidgetText,
		Rules:       "omitempty,max=200",
	},
	{
		Name:        Biography,
		Title:       "Biography",
		Description: "A short overview of who you are and what you do.",
		Widget:      WidgetTextArea,
		Rules:       "omitempty,max=2000",
	},
}

// joinSchema holds the credential fields specific to the join form.
var joinSchema = []Field{
	{
		Name:  Username,
		Title: "User Name",
		Description: "Enter a user name, usually something like 'jsmith'. " +
			"No spaces or special characters. " +
			"Usernames and passwords are case sensitive, " +
			"make sure the caps lock key is not enabled. " +
			"This is the name used to log in.",
		Widget:   WidgetText,
		Required: true,
		Rules:    "required,printascii,excludesall= ,max=100",
	},
	{
		Name:        Password,
		Title:       "Password",
		Description: "Minimum 5 characters.",
		Widget:      WidgetPassword,
		Required:    true,
		Rules:       "required,min=5",
	},
	{
		Name:        PasswordCtl,
		Title:       "Confirm password",
		Description: "Re-enter the password. Make sure the passwords are identical.",
		Widget:      WidgetPassword,
		Required:    true,
		Rules:       "required",
	},
	{
		Name:   MailMe,
		Title:  "Send a mail with the password",
		Widget: WidgetCheckbox,
	},
}

// Join-form specific help texts replacing the user data descriptions.
const (
	fullnameJoinHelp = "Enter full name, eg. John Smith."
	emailJoinHelp    = "Enter an email address. " +
		"This is necessary in case the password is lost. " +
		"We respect your privacy, and will not give the address " +
		"away to any third parties or expose it anywhere."
	mailMeNotice = "A URL will be generated and e-mailed to you; " +
		"follow the link to reach a page where you can change your " +
		"password and complete the registration process."
)

// Known returns the definition of every field the join form can render,
// keyed by name.
func Known() map[FieldName]Field {
	all := make(map[FieldName]Field, len(userDataSchema)+len(joinSchema))
	for _, f := range userDataSchema {
		all[f.Name] = f
	}
	for _, f := range joinSchema {
		all[f.Name] = f
	}
	return all
}

// Resolve maps an order onto field definitions. Names without a definition
// are dropped silently. When validateEmail is set the mail_me field turns
// into a read-only notice since the password is always mailed.
func Resolve(order FieldOrder, validateEmail bool) []Field {
	known := Known()
	fields := make([]Field, 0, len(order))
	for _, name := range order {
		f, ok := known[name]
		if !ok {
			continue
		}
		switch f.Name {
		case Fullname:
			f.Description = fullnameJoinHelp
		case Email:
			f.Description = emailJoinHelp
		case MailMe:
			if validateEmail {
				f.Title = ""
				f.ReadOnly = true
				f.Widget = WidgetNotice
				f.Description = mailMeNotice
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// ForSite computes the resolved fields for the given join_form_fields and
// validate_email settings.
func ForSite(joinFormFields []string, validateEmail bool) []Field {
	order := Select(ParseOrder(joinFormFields), !validateEmail)
	return Resolve(order, validateEmail)
}
