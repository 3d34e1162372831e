package userservice

import (
	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 3

	// bcrypt rejects longer input
	MaxPasswordBytes = 72
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.MinLength(username, MinUsernameLength), "username", "must be at least 3 characters long")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(v.MinLength(password, MinPasswordLength), "password", "must be at least 3 characters long")
	v.Check(v.MaxBytes(password, MaxPasswordBytes), "password", "must not be more than 72 bytes long")
}

func ValidateToken(v *common.Validator, token string) {
	v.Check(token != "", "token", "must be provided")
}
