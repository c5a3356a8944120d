package domain

// Session is the persisted authentication record.
type Session struct {
	LoggedIn bool   `json:"loggedIn"`
	Email    string `json:"email"`
}

// RememberedEmail is cached across sessions only to prefill the login form.
type RememberedEmail struct {
	Email string `json:"email"`
}
