package domain

// Account is the server-side record for a registered email.
// Password is stored and compared verbatim; the login contract is an
// exact-equality check, there is no hashing scheme to apply.
type Account struct {
	Email    string
	Password string
	Verified bool
}
