package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blog_backend/internal/feature/posts/domain/entity"
)

const (
	// DefaultLimit is the page size used when the caller supplies none.
	DefaultLimit = 20
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// PostRepository abstracts the persistence layer for posts.
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type PostRepository interface {
	// Find returns one page of posts matching the query (case-insensitive
	// substring over title, content and tag membership; empty query matches
	// everything), newest first, plus the total match count.
	Find(ctx context.Context, query string, page, limit int) ([]entity.Post, int64, error)

	// FindByID returns a single post or ErrPostNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// Create persists a new post and fills in its generated ID.
	Create(ctx context.Context, post *entity.Post) error

	// CreateBatch inserts all posts in one transaction. Either the whole
	// batch is persisted or none of it is.
	CreateBatch(ctx context.Context, posts []entity.Post) ([]entity.Post, error)

	// Update applies a partial patch and returns the updated post, or
	// ErrPostNotFound if the ID does not exist.
	Update(ctx context.Context, id uint, patch PostPatch) (*entity.Post, error)

	// Delete removes a post, returning ErrPostNotFound if nothing was removed.
	Delete(ctx context.Context, id uint) error
}

// CreatePostInput carries the writable fields of a new post.
type CreatePostInput struct {
	Title   string
	Content string
	Author  string
	Tags    []string

	// PublishedAt is optional; the zero value means "now".
	PublishedAt time.Time

	// Image is the stored upload metadata, nil when no file was attached.
	Image *entity.ImageRef
}

// PostPatch enumerates exactly the fields a caller may change. A nil pointer
// means "leave untouched". Tags, when supplied, replace the whole sequence.
type PostPatch struct {
	Title   *string
	Content *string
	Author  *string
	Tags    *[]string

	// Image is new upload metadata replacing the current image.
	Image *entity.ImageRef

	// ClearImage nulls all three image fields. It wins over a simultaneously
	// supplied Image.
	ClearImage bool
}

// postsUsecase は投稿のCRUDと検索のビジネスロジックを実装します。
type postsUsecase struct {
	posts PostRepository
}

// NewPostsUsecase creates a new postsUsecase with the given repository.
func NewPostsUsecase(posts PostRepository) *postsUsecase {
	return &postsUsecase{posts: posts}
}

// List returns one page of posts matching query, with pagination metadata.
// page is coerced up to 1 and limit clamped to [1,MaxLimit]; a limit of 0
// means "use the default".
func (u *postsUsecase) List(ctx context.Context, query string, page, limit int) (*entity.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	items, total, err := u.posts.Find(ctx, strings.TrimSpace(query), page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if items == nil {
		items = []entity.Post{}
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &entity.PostPage{
		Items: items,
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}

// Get returns a single post by ID.
func (u *postsUsecase) Get(ctx context.Context, id uint) (*entity.Post, error) {
	return u.posts.FindByID(ctx, id)
}

// Create validates the input and persists a new post. Absent tags default to
// an empty sequence; an absent timestamp defaults to the current time.
func (u *postsUsecase) Create(ctx context.Context, in CreatePostInput) (*entity.Post, error) {
	if err := validateFields(in.Title, in.Content, in.Author, in.Tags); err != nil {
		return nil, err
	}

	publishedAt := in.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now()
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &entity.Post{
		Title:       in.Title,
		Content:     in.Content,
		Author:      in.Author,
		PublishedAt: publishedAt,
		Tags:        tags,
		Image:       in.Image,
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// CreateMany validates every item before touching storage, then inserts the
// whole batch atomically. One bad item rejects the entire batch.
func (u *postsUsecase) CreateMany(ctx context.Context, inputs []CreatePostInput) ([]entity.Post, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: batch must contain at least one post", ErrValidation)
	}
	for i, in := range inputs {
		if err := validateFields(in.Title, in.Content, in.Author, in.Tags); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	posts := make([]entity.Post, 0, len(inputs))
	for _, in := range inputs {
		publishedAt := in.PublishedAt
		if publishedAt.IsZero() {
			publishedAt = time.Now()
		}
		tags := in.Tags
		if tags == nil {
			tags = []string{}
		}
		posts = append(posts, entity.Post{
			Title:       in.Title,
			Content:     in.Content,
			Author:      in.Author,
			PublishedAt: publishedAt,
			Tags:        tags,
			Image:       in.Image,
		})
	}

	created, err := u.posts.CreateBatch(ctx, posts)
	if err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	return created, nil
}

// Update applies a partial patch to an existing post. Supplied fields must
// still pass the same checks as on create; clearing the image wins over a new
// image supplied in the same call.
func (u *postsUsecase) Update(ctx context.Context, id uint, patch PostPatch) (*entity.Post, error) {
	if patch.Title != nil {
		if err := validateRequired("titulo", *patch.Title); err != nil {
			return nil, err
		}
	}
	if patch.Content != nil {
		if err := validateRequired("contenido", *patch.Content); err != nil {
			return nil, err
		}
	}
	if patch.Author != nil {
		if err := validateRequired("autor", *patch.Author); err != nil {
			return nil, err
		}
	}
	if patch.Tags != nil {
		if err := validateTags(*patch.Tags); err != nil {
			return nil, err
		}
	}

	// explicit-clear wins
	if patch.ClearImage {
		patch.Image = nil
	}

	return u.posts.Update(ctx, id, patch)
}

// Delete removes a post by ID.
func (u *postsUsecase) Delete(ctx context.Context, id uint) error {
	return u.posts.Delete(ctx, id)
}

// validateFields checks the required fields and the tag sequence of a post.
func validateFields(title, content, author string, tags []string) error {
	if err := validateRequired("titulo", title); err != nil {
		return err
	}
	if err := validateRequired("contenido", content); err != nil {
		return err
	}
	if err := validateRequired("autor", author); err != nil {
		return err
	}
	return validateTags(tags)
}

func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, field)
	}
	return nil
}

func validateTags(tags []string) error {
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: each tag must be a non-empty string", ErrValidation)
		}
	}
	return nil
}
