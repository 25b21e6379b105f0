package auth

// Routes the manager navigates to after a session change.
const (
	RouteInterface = "/interface"
	RouteLanding   = "/"
)

// Navigator receives the route to show after login, registration or
// logout.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}
