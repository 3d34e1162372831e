package blogservice

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
	ErrRecordNotFound = errors.New("record not found")
	ErrUserNotFound   = errors.New("user does not exist")
)

func newBlogModel(db *mongo.Database) *BlogModel {
	return &BlogModel{
		blogs: db.Collection(common.BlogsCollection),
		users: db.Collection(common.UsersCollection),
	}
}

func byID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	res, err := m.blogs.InsertOne(ctx, blog)
	if err != nil {
		return err
	}

	blog.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *BlogModel) userExists(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	n, err := m.users.CountDocuments(ctx, byID(userID), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

// appendToUser adds blogID to the end of the user's blogs list.
func (m *BlogModel) appendToUser(ctx context.Context, userID, blogID primitive.ObjectID) error {
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "blogs", Value: blogID}}}}

	res, err := m.users.UpdateOne(ctx, byID(userID), update)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (m *BlogModel) removeFromUser(ctx context.Context, userID, blogID primitive.ObjectID) error {
	update := bson.D{{Key: "$pull", Value: bson.D{{Key: "blogs", Value: blogID}}}}

	_, err := m.users.UpdateOne(ctx, byID(userID), update)
	return err
}

func (m *BlogModel) getBlogByID(ctx context.Context, id primitive.ObjectID) (*Blog, error) {
	var blog Blog

	err := m.blogs.FindOne(ctx, byID(id)).Decode(&blog)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// getBlogs returns all blogs in insertion order with the user reference
// resolved to id, username and name.
func (m *BlogModel) getBlogs(ctx context.Context) ([]BlogWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: common.UsersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "author", Value: 1},
			{Key: "url", Value: 1},
			{Key: "likes", Value: 1},
			{Key: "user._id", Value: 1},
			{Key: "user.username", Value: 1},
			{Key: "user.name", Value: 1},
		}}},
	}

	cursor, err := m.blogs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	blogs := []BlogWithUser{}
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}

	return blogs, nil
}

// update replaces the mutable fields of the blog owned by blog.User.
func (m *BlogModel) update(ctx context.Context, blog *Blog) error {
	filter := bson.D{{Key: "_id", Value: blog.ID}, {Key: "user", Value: blog.User}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: blog.Title},
		{Key: "author", Value: blog.Author},
		{Key: "url", Value: blog.URL},
		{Key: "likes", Value: blog.Likes},
	}}}

	err := m.blogs.FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(blog)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) delete(ctx context.Context, blogID, userID primitive.ObjectID) error {
	res, err := m.blogs.DeleteOne(ctx, bson.D{{Key: "_id", Value: blogID}, {Key: "user", Value: userID}})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}
