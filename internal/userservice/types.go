package userservice

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	PasswordCost = 10

	DefaultTokenTTL time.Duration = time.Hour
)

var (
	AnonymousIdentity = Identity{}
)

type UserService struct {
	m *UserModel
	t *TokenMaker
}

type UserModel struct {
	users *mongo.Collection
	blogs *mongo.Collection
}

type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username string               `bson:"username" json:"username"`
	Name     string               `bson:"name" json:"name"`
	Password Password             `bson:"passwordHash" json:"-"`
	Blogs    []primitive.ObjectID `bson:"blogs" json:"blogs"`
}

// Password holds the plain text only for the lifetime of a request; only hash is stored.
type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

// BlogSummary is the populated form of a User.Blogs entry.
type BlogSummary struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Title  string             `bson:"title" json:"title"`
	URL    string             `bson:"url" json:"url"`
	Author string             `bson:"author" json:"author"`
}

type UserWithBlogs struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Name     string             `json:"name"`
	Blogs    []BlogSummary      `json:"blogs"`
}

// Identity is the decoded identity claim of an access token.
type Identity struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
}

type TokenMaker struct {
	secret []byte
	ttl    time.Duration
}

// AuthToken is returned by a successful login.
type AuthToken struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
