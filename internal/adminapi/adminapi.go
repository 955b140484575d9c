// Package adminapi exposes the administrator surface: catalog management,
// order management and the login flow. Every route except login/logout sits
// behind the admin session middleware.
package adminapi

// Register wires all admin routes onto the web server.
func Register() {
	registerAuthRoutes()
	registerFoodRoutes()
	registerCategoryRoutes()
	registerOrderRoutes()
}
