// Package adapters はpostsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
)

// PostModel is the persistence shape of a post. Tags live in a child table so
// the membership filter runs as a real query; the three image columns are
// nullable and always written together.
type PostModel struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Content     string    `gorm:"type:text;not null"`
	Author      string    `gorm:"size:255;not null"`
	PublishedAt time.Time `gorm:"not null;index"`

	ImageURL  *string `gorm:"size:512"`
	ImageMIME *string `gorm:"size:64"`
	ImageName *string `gorm:"size:255"`

	Tags []PostTagModel `gorm:"foreignKey:PostID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for PostModel.
func (PostModel) TableName() string {
	return "posts"
}

// PostTagModel is one tag of a post. Position preserves the display order.
type PostTagModel struct {
	ID       uint   `gorm:"primaryKey"`
	PostID   uint   `gorm:"not null;index"`
	Position int    `gorm:"not null"`
	Label    string `gorm:"size:64;not null"`
}

// TableName returns the table name for PostTagModel.
func (PostTagModel) TableName() string {
	return "post_tags"
}

// postGorm はPostRepositoryインターフェースのGORM実装です。
type postGorm struct {
	db *gorm.DB
}

// postGormがPostRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostRepository は指定されたgorm.DB接続でpostGormの新しいインスタンスを生成します。
func NewPostRepository(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

func toModel(p entity.Post) PostModel {
	m := PostModel{
		Title:       p.Title,
		Content:     p.Content,
		Author:      p.Author,
		PublishedAt: p.PublishedAt,
	}
	for i, tag := range p.Tags {
		m.Tags = append(m.Tags, PostTagModel{Position: i, Label: tag})
	}
	if p.Image != nil {
		m.ImageURL = &p.Image.URL
		m.ImageMIME = &p.Image.MIME
		m.ImageName = &p.Image.Name
	}
	return m
}

func toEntity(m PostModel) entity.Post {
	p := entity.Post{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		Author:      m.Author,
		PublishedAt: m.PublishedAt,
		Tags:        []string{},
	}
	for _, tag := range m.Tags {
		p.Tags = append(p.Tags, tag.Label)
	}
	if m.ImageURL != nil && m.ImageMIME != nil && m.ImageName != nil {
		p.Image = &entity.ImageRef{URL: *m.ImageURL, MIME: *m.ImageMIME, Name: *m.ImageName}
	}
	return p
}

// filtered builds the base query for a case-insensitive substring match over
// title, content and tag membership. An empty query matches every post.
func (r *postGorm) filtered(ctx context.Context, query string) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&PostModel{})
	if query == "" {
		return tx
	}
	like := "%" + strings.ToLower(query) + "%"
	return tx.Where(
		"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR EXISTS (SELECT 1 FROM post_tags WHERE post_tags.post_id = posts.id AND LOWER(post_tags.label) LIKE ?)",
		like, like, like,
	)
}

// Find returns one page of matching posts, newest first, and the total count.
func (r *postGorm) Find(ctx context.Context, query string, page, limit int) ([]entity.Post, int64, error) {
	var total int64
	if err := r.filtered(ctx, query).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []PostModel
	err := r.filtered(ctx, query).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("post_tags.position ASC") }).
		Order("published_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]entity.Post, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, total, nil
}

// FindByID returns a single post or usecase.ErrPostNotFound.
func (r *postGorm) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var m PostModel
	err := r.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("post_tags.position ASC") }).
		First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}
	p := toEntity(m)
	return &p, nil
}

// Create persists the post and its tags, then fills in the generated ID.
func (r *postGorm) Create(ctx context.Context, post *entity.Post) error {
	m := toModel(*post)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	post.ID = m.ID
	return nil
}

// CreateBatch inserts every post in a single transaction. A failure on any
// row rolls back the whole batch.
func (r *postGorm) CreateBatch(ctx context.Context, posts []entity.Post) ([]entity.Post, error) {
	ms := make([]PostModel, 0, len(posts))
	for _, p := range posts {
		ms = append(ms, toModel(p))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range ms {
			if err := tx.Create(&ms[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]entity.Post, 0, len(ms))
	for _, m := range ms {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Update applies the patch inside a transaction. Only supplied columns
// change; a supplied tag sequence replaces the stored one wholesale.
func (r *postGorm) Update(ctx context.Context, id uint, patch usecase.PostPatch) (*entity.Post, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m PostModel
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrPostNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Content != nil {
			updates["content"] = *patch.Content
		}
		if patch.Author != nil {
			updates["author"] = *patch.Author
		}
		if patch.ClearImage {
			updates["image_url"] = nil
			updates["image_mime"] = nil
			updates["image_name"] = nil
		} else if patch.Image != nil {
			updates["image_url"] = patch.Image.URL
			updates["image_mime"] = patch.Image.MIME
			updates["image_name"] = patch.Image.Name
		}
		if len(updates) > 0 {
			if err := tx.Model(&m).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Tags != nil {
			if err := tx.Where("post_id = ?", id).Delete(&PostTagModel{}).Error; err != nil {
				return err
			}
			for i, tag := range *patch.Tags {
				if err := tx.Create(&PostTagModel{PostID: id, Position: i, Label: tag}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// Delete removes the post and its tags, reporting whether anything existed.
func (r *postGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&PostTagModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&PostModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrPostNotFound
		}
		return nil
	})
}
