package domain

// User models a registered account. PasswordHash holds the PHC-encoded
// digest of the credential; the plaintext is never stored or logged.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
