package userservice

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *mongo.Database) *UserModel {
	return &UserModel{
		users: db.Collection(common.UsersCollection),
		blogs: db.Collection(common.BlogsCollection),
	}
}

func (m *UserModel) insertUser(ctx context.Context, u *User) error {
	if u.Blogs == nil {
		u.Blogs = []primitive.ObjectID{}
	}

	res, err := m.users.InsertOne(ctx, u)
	if err != nil {
		switch {
		case common.IsDuplicateKeyError(err):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *UserModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User

	err := m.users.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&u)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getUsers returns every user with its blogs populated in list order.
// References to blogs that no longer exist are skipped.
func (m *UserModel) getUsers(ctx context.Context) ([]UserWithBlogs, error) {
	cursor, err := m.users.Find(ctx, bson.D{}, options.Find().SetProjection(bson.D{{Key: "passwordHash", Value: 0}}))
	if err != nil {
		return nil, err
	}

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	var ids []primitive.ObjectID
	for _, u := range users {
		ids = append(ids, u.Blogs...)
	}

	byID, err := m.getBlogSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]UserWithBlogs, 0, len(users))
	for _, u := range users {
		populated := UserWithBlogs{
			ID:       u.ID,
			Username: u.Username,
			Name:     u.Name,
			Blogs:    make([]BlogSummary, 0, len(u.Blogs)),
		}

		for _, id := range u.Blogs {
			if b, ok := byID[id]; ok {
				populated.Blogs = append(populated.Blogs, b)
			}
		}

		result = append(result, populated)
	}

	return result, nil
}

func (m *UserModel) getBlogSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]BlogSummary, error) {
	byID := make(map[primitive.ObjectID]BlogSummary, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	projection := bson.D{
		{Key: "title", Value: 1},
		{Key: "url", Value: 1},
		{Key: "author", Value: 1},
	}

	cursor, err := m.blogs.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}

	var blogs []BlogSummary
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}

	for _, b := range blogs {
		byID[b.ID] = b
	}

	return byID, nil
}
