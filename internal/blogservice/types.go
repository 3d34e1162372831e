package blogservice

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Blog struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title  string             `bson:"title" json:"title"`
	Author string             `bson:"author" json:"author"`
	URL    string             `bson:"url" json:"url"`
	Likes  int                `bson:"likes" json:"likes"`
	// User references the owning user. It is not populated.
	User primitive.ObjectID `bson:"user" json:"user"`
}

// UserSummary is the populated form of Blog.User.
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	Name     string             `bson:"name" json:"name"`
}

type BlogWithUser struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Title  string             `bson:"title" json:"title"`
	Author string             `bson:"author" json:"author"`
	URL    string             `bson:"url" json:"url"`
	Likes  int                `bson:"likes" json:"likes"`
	User   *UserSummary       `bson:"user,omitempty" json:"user"`
}

// BlogRequest is the payload of both create and update. Likes defaults to 0.
type BlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

type BlogModel struct {
	blogs *mongo.Collection
	users *mongo.Collection
}

type BlogService struct {
	m *BlogModel
}
