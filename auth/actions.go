package auth

import (
	"context"
	"errors"

	"invoiceflow/nav"
)

// SignInForm runs the login form workflow: delegate the credentials to
// sign-in, then hand back where to send the user. Failures land on the login
// view with the error message percent-encoded in the query string; success
// goes straight to the dashboard.
func (s *Service) SignInForm(ctx context.Context, creds Credentials) nav.Redirect {
	session, err := s.SignIn(ctx, creds)
	if err != nil {
		return nav.Encoded("error", nav.RouteLogin, signInMessage(err))
	}

	return nav.Redirect{Target: nav.RouteDashboard, Token: session.Token}
}

// SignOutForm revokes the session and sends the user to the root view.
// Per the form contract there is no error path: a failed revocation still
// navigates away, the token simply dies at its natural expiry.
func (s *Service) SignOutForm(ctx context.Context, token string) nav.Redirect {
	_ = s.SignOut(ctx, token)
	return nav.Redirect{Target: nav.RouteRoot}
}

// signInMessage keeps backend internals out of the login page flash.
func signInMessage(err error) string {
	if errors.Is(err, ErrInvalidCredentials) {
		return "Invalid login credentials"
	}
	return "Unable to sign in. Please try again."
}
