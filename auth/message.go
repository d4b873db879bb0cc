package auth

import nt "portal/entity"

// LoggedInMsg announces a successful login.
type LoggedInMsg struct {
	User nt.User
}

// failedMsg reports a login the authenticator refused or could not complete
type failedMsg struct {
	err error
}
