package host

import "errors"

var ErrHostNotFound = errors.New("host not found")

// Host is an interviewer whose profile is shown next to their slots.
type Host struct {
	ID       string
	Name     string
	Company  string
	Title    string
	Bio      string
	PhotoURL string
	Email    string
}
