// Package viewmodel defines presentation-ready structs for the HTML templates.
// View models decouple template rendering from domain model types.
package viewmodel

import "html/template"

// Page holds the data every page shares with the layout shell: the
// document title, which nav entry is active, the signed-in account (nil
// for anonymous visitors), the footer year and the CSRF token embedded
// in forms.
type Page struct {
	Title   string
	Active  string
	Account *Account
	Year    int
	CSRF    string
}

// Account holds the signed-in parent's profile as shown in the header
// and on the dashboard.
type Account struct {
	Name      string
	Email     string
	AvatarURL string
}

// Dashboard wraps the shared page data with the session summary shown
// on the signed-in home page.
type Dashboard struct {
	Page
	SessionExpires string
}

// About wraps the shared page data with the rendered About content.
// Content is sanitized HTML produced from the embedded markdown source.
type About struct {
	Page
	Content template.HTML
}
