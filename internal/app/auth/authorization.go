package auth

// Identity is the caller as established by a verified token
type Identity struct {
	Username string
	IsAdmin  bool
}

// IsLoggedIn reports whether a caller was authenticated
func IsLoggedIn(id *Identity) bool {
	return id != nil && id.Username != ""
}

// IsAdmin reports whether the caller carries the admin flag
func IsAdmin(id *Identity) bool {
	return IsLoggedIn(id) && id.IsAdmin
}

// IsSelfOrAdmin reports whether the caller is an admin or is username
func IsSelfOrAdmin(id *Identity, username string) bool {
	if !IsLoggedIn(id) {
		return false
	}
	return id.IsAdmin || id.Username == username
}

// CanGrantAdmin reports whether the caller may set the admin flag on an account
func CanGrantAdmin(id *Identity) bool {
	return IsAdmin(id)
}
