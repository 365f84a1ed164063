package endpoints

import (
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

// Web-app route paths.
const (
	RouteHome    = "/"
	RouteLanding = "/landing"
	RouteBrowse  = "/browse"
	RouteAbout   = "/about"

	RouteLogin    = "/login"
	RouteRegister = "/register"

	RouteAdmin        = "/admin"
	RouteDashboard    = "/admin/dashboard"
	RouteDocuments    = "/admin/documents"
	RouteDocumentsAdd = "/admin/documents/add"
	RouteUsers        = "/admin/users"
	RouteReports      = "/reports"
	RouteSettings     = "/settings"
)

var documentsEdit = uritemplate.MustNew("/admin/documents/edit/{id}")

func RouteDocumentsEdit(id string) string {
	return expand(documentsEdit, "id", id)
}

// IsAdminRoute reports whether route belongs to the admin area.
func IsAdminRoute(route string) bool {
	return route == RouteAdmin || strings.HasPrefix(route, RouteAdmin+"/")
}

// WebLink joins the web-app URL and a route using the app's hash routing,
// e.g. http://localhost:5173/#/admin/users.
func WebLink(appURL, route string) string {
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return strings.TrimRight(appURL, "/") + "/#" + route
}
