package userservice

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid username or password")
)

func NewUserService(db *mongo.Database, secret string, tokenTTL time.Duration) *UserService {
	return &UserService{
		m: newUserModel(db),
		t: NewTokenMaker(secret, tokenTTL),
	}
}

// CreateUser registers a new user. Only the password hash is persisted.
func (s *UserService) CreateUser(ctx context.Context, username, name, password string) (*User, error) {
	// Perform validation
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
	}

	// Set the password hash
	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// GetUsers returns all users with their blogs populated.
func (s *UserService) GetUsers(ctx context.Context) ([]UserWithBlogs, error) {
	return s.m.getUsers(ctx)
}

// LoginUser checks the credentials and issues a signed access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthToken{Token: token, Username: user.Username, Name: user.Name}, nil
}

// GetIdentityFromToken verifies an access token and returns the identity it carries.
func (s *UserService) GetIdentityFromToken(token string) (*Identity, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.t.verifyToken(token)
}

// IssueToken signs an access token for u.
func (s *UserService) IssueToken(u *User) (string, error) {
	return s.t.createToken(u)
}
