// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"postservice/internal/models"
	"postservice/internal/repository"
	"postservice/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumAuthors int
	NumPosts   int
}

// Seeder populates the database through the service layer so that the
// denormalized like and comment counters stay consistent with the rows
// actually written.
type Seeder struct {
	db       *gorm.DB
	posts    *service.PostService
	comments *service.CommentService
	likes    *service.LikeService
	rng      *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	return &Seeder{
		db:       db,
		posts:    service.NewPostService(postRepo),
		comments: service.NewCommentService(db, commentRepo, postRepo),
		likes:    service.NewLikeService(db, likeRepo, postRepo),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Likes and comments go first so that the
// post rows they reference are deleted last.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{&models.Like{}, &models.Comment{}, &models.Post{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

// Seed creates authors, posts, comments with replies, and likes.
func (s *Seeder) Seed(ctx context.Context, opts Options) error {
	log.Printf("Seeding %d authors and %d posts...", opts.NumAuthors, opts.NumPosts)

	authors := make([]string, opts.NumAuthors)
	for i := range authors {
		authors[i] = uuid.NewString()
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		post, err := s.posts.CreatePost(ctx, service.CreatePostInput{
			AuthorID: authors[s.rng.Intn(len(authors))],
			Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
			Hashtags: s.hashtags(),
			Images:   s.images(),
		})
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))

	var commentCount, likeCount int
	for _, post := range posts {
		// top-level comments with occasional replies
		numComments := s.rng.Intn(5)
		for j := 0; j < numComments; j++ {
			comment, err := s.comments.CreateComment(ctx, service.CreateCommentInput{
				PostID:   post.ID,
				AuthorID: authors[s.rng.Intn(len(authors))],
				Text:     gofakeit.Sentence(10),
			})
			if err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			commentCount++

			if s.rng.Intn(3) == 0 {
				parentID := comment.ID
				if _, err := s.comments.CreateComment(ctx, service.CreateCommentInput{
					PostID:          post.ID,
					ParentCommentID: &parentID,
					AuthorID:        authors[s.rng.Intn(len(authors))],
					Text:            gofakeit.Sentence(8),
				}); err != nil {
					return fmt.Errorf("failed to create reply: %w", err)
				}
				commentCount++
			}
		}

		// a random subset of authors likes each post; one like per author
		// keeps the unique constraint happy
		for _, author := range authors {
			if s.rng.Intn(4) != 0 {
				continue
			}
			if _, err := s.likes.CreateLike(ctx, service.CreateLikeInput{
				PostID: post.ID,
				UserID: author,
			}); err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
			likeCount++
		}
	}

	log.Printf("Created %d comments and %d likes", commentCount, likeCount)
	return nil
}

func (s *Seeder) hashtags() []string {
	tags := make([]string, s.rng.Intn(4))
	for i := range tags {
		tags[i] = gofakeit.Word()
	}
	return tags
}

func (s *Seeder) images() []string {
	urls := make([]string, s.rng.Intn(3))
	for i := range urls {
		urls[i] = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	return urls
}
