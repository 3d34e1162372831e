package blogservice

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrNotOwner = errors.New("blog is owned by another user")
)

func NewBlogService(db *mongo.Database) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

func newBlog(req *BlogRequest, userID primitive.ObjectID) *Blog {
	blog := &Blog{
		Title:  sanitizeText(req.Title),
		Author: sanitizeText(req.Author),
		URL:    req.URL,
		User:   userID,
	}

	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	return blog
}

// CreateBlog saves a blog owned by userID and appends it to the user's blog list.
// The two writes are independent: if the second fails the blog is left unlisted.
func (s *BlogService) CreateBlog(ctx context.Context, req *BlogRequest, userID primitive.ObjectID) (*Blog, error) {
	blog := newBlog(req, userID)

	v := common.NewValidator()
	validateBlog(v, blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	ok, err := s.m.userExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}

	if err := s.m.appendToUser(ctx, userID, blog.ID); err != nil {
		return nil, fmt.Errorf("blog %s saved but not linked to user: %w", blog.ID.Hex(), err)
	}

	return blog, nil
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id primitive.ObjectID) (*Blog, error) {
	return s.m.getBlogByID(ctx, id)
}

// GetBlogs returns every blog with its user populated.
func (s *BlogService) GetBlogs(ctx context.Context) ([]BlogWithUser, error) {
	return s.m.getBlogs(ctx)
}

// UpdateBlog replaces title, author, url and likes. Only the owner can update.
func (s *BlogService) UpdateBlog(ctx context.Context, id primitive.ObjectID, req *BlogRequest, userID primitive.ObjectID) (*Blog, error) {
	current, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.User != userID {
		return nil, ErrNotOwner
	}

	blog := newBlog(req, userID)
	blog.ID = id

	v := common.NewValidator()
	validateBlog(v, blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.update(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

// DeleteBlog deletes a blog post and unlinks it from its owner. Only the owner can delete.
func (s *BlogService) DeleteBlog(ctx context.Context, id, userID primitive.ObjectID) error {
	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.User != userID {
		return ErrNotOwner
	}

	if err := s.m.delete(ctx, id, userID); err != nil {
		return err
	}

	return s.m.removeFromUser(ctx, userID, id)
}
