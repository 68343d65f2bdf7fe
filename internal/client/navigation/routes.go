// Package navigation owns the console's current route and the redirects the
// gate and screens issue.
package navigation

import "strings"

const (
	RoutePublic     = "/"
	RouteRedirected = "/?redirected"
	RouteHome       = "/gzap"
	RouteInstance   = "/instancia"
	RouteMessages   = "/mensagens"
	RouteUsers      = "/usuarios"
	RouteCompanies  = "/empresas"
)

// AdminRoutes are closed to identities of type "user".
var AdminRoutes = []string{RouteUsers, RouteCompanies}

// Path strips the query part of a route ("/?redirected" -> "/").
func Path(route string) string {
	if i := strings.IndexByte(route, '?'); i >= 0 {
		return route[:i]
	}
	return route
}

// IsRedirected reports whether route carries the idle-expiry marker.
func IsRedirected(route string) bool {
	i := strings.IndexByte(route, '?')
	if i < 0 {
		return false
	}
	for _, part := range strings.Split(route[i+1:], "&") {
		if part == "redirected" || strings.HasPrefix(part, "redirected=") {
			return true
		}
	}
	return false
}

// Contains reports whether the path of route is one of routes.
func Contains(routes []string, route string) bool {
	p := Path(route)
	for _, r := range routes {
		if r == p {
			return true
		}
	}
	return false
}
