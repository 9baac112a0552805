package state

import "time"

// Account is the authentication container's value. The zero value means
// no one is signed in.
type Account struct {
	ID         string
	Name       string
	Email      string
	SignedInAt time.Time
}

func (a Account) SignedIn() bool {
	return a.ID != ""
}

// FirstName is used for dashboard greetings.
func (a Account) FirstName() string {
	for i, r := range a.Name {
		if r == ' ' {
			return a.Name[:i]
		}
	}
	return a.Name
}
