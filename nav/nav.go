// Package nav holds the route table shared by the form workflows and the
// HTTP layer, plus the redirect descriptors those workflows hand back.
package nav

import "net/url"

const (
	RouteRoot        = "/"
	RouteLogin       = "/login"
	RouteDashboard   = "/dashboard"
	RouteInvoiceList = "/dashboard/invoices"
)

// Redirect tells the caller where to send the user next. Token is set only
// by a successful sign-in so the HTTP layer can attach the session.
type Redirect struct {
	Target string
	Token  string
}

// Encoded builds a redirect target carrying a flash message in the query
// string, e.g. /login?kind=error&message=Invalid%20credentials.
func Encoded(kind, path, message string) Redirect {
	values := url.Values{}
	values.Set("kind", kind)
	values.Set("message", message)
	return Redirect{Target: path + "?" + values.Encode()}
}
