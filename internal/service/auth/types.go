package auth

import (
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Email     string
	Password  string
	FullName  string
	IP        string
	UserAgent string
}

// LoginInput carries a validated login request.
type LoginInput struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
}

// Result is returned by Register, Login and Refresh. Refresh.Raw is the
// token the client should keep using: the same one it presented unless
// rotation is enabled.
type Result struct {
	User    model.User
	Access  utils.AccessToken
	Refresh utils.RefreshToken
}
