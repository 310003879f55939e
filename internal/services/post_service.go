package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/blogs/backend/internal/mailer"
	"github.com/anonto42/blogs/backend/internal/models"
	"github.com/anonto42/blogs/backend/internal/repositories"
)

const newPostSubject = "New post"

// PostService publishes and edits posts and notifies subscribers of new ones.
type PostService struct {
	postRepository         repositories.PostRepository
	subscriptionRepository repositories.SubscriptionRepository
	mailer                 mailer.Mailer
	fromEmail              string
	siteURL                string
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	m mailer.Mailer,
	fromEmail, siteURL string,
) *PostService {
	return &PostService{
		postRepository:         postRepo,
		subscriptionRepository: subscriptionRepo,
		mailer:                 m,
		fromEmail:              fromEmail,
		siteURL:                siteURL,
	}
}

// Publish creates a post in blog and emails the blog's current subscribers.
// A notification failure is returned as-is; the post is already stored by then.
func (s *PostService) Publish(ctx context.Context, blog *models.Blog, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		BlogID: blog.ID,
		Title:  req.Title,
		Text:   req.Text,
	}
	if err := s.postRepository.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.notifySubscribers(ctx, blog, post); err != nil {
		return post, fmt.Errorf("notify subscribers of post %d: %w", post.ID, err)
	}
	return post, nil
}

// Update rewrites title and text. Subscribers are not notified again.
func (s *PostService) Update(ctx context.Context, post *models.Post, req models.UpdatePostRequest) error {
	post.Title = req.Title
	post.Text = req.Text
	return s.postRepository.UpdatePost(ctx, post)
}

func (s *PostService) notifySubscribers(ctx context.Context, blog *models.Blog, post *models.Post) error {
	emails, err := s.subscriptionRepository.GetSubscriberEmails(ctx, blog.ID)
	if err != nil {
		return fmt.Errorf("load subscriber emails: %w", err)
	}
	if len(emails) == 0 {
		return nil
	}

	return s.mailer.Send(ctx, mailer.Message{
		From:    s.fromEmail,
		To:      emails,
		Subject: newPostSubject,
		Body:    newPostSubject + " " + AbsoluteURL(s.siteURL, post.Path(blog.Slug)),
	})
}

// AbsoluteURL joins the site URL and a path, always ending in a slash.
func AbsoluteURL(siteURL, path string) string {
	return strings.TrimRight(siteURL, "/") + "/" + strings.Trim(path, "/") + "/"
}
