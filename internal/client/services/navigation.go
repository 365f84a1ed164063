package services

// Navigator moves the UI to a route path such as endpoints.RouteHome.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Opener hands a URL to something that can show it to the user, such as
// a browser or the terminal.
type Opener interface {
	Open(url string)
}

type OpenerFunc func(url string)

func (f OpenerFunc) Open(url string) { f(url) }
