package model

// User represents an account in the `users` table. A user with a stored
// password hash authenticates locally; a nil hash means the account is
// expected to authenticate against the external directory instead. The nil
// hash is a sentinel, not an error state.
//
// Fields:
//
//	ID           - primary key identifier (login name).
//	DisplayName  - human-readable name embedded into issued tokens.
//	ContactInfo  - contact string (typically an email address).
//	PasswordHash - bcrypt hash, nil for directory-backed accounts.
type User struct {
	ID           string  // users.id
	DisplayName  string  // users.display_name
	ContactInfo  string  // users.contact_info
	PasswordHash *string // users.password_hash (nullable)
}
