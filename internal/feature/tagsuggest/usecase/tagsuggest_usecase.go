// Package usecase はtagsuggestフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"blog_backend/internal/feature/tagsuggest/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（5MB）です。
	// 投稿画像と同じ上限を使います。
	MaxImageSize = 5 * 1024 * 1024

	// SummaryPromptTemplate is the prompt used to draft a post summary.
	SummaryPromptTemplate = "Summarize the following blog post in one short paragraph, in the language the post is written in:\n\n%s"

	// MaxContentLength is the largest post body (in runes) accepted for summarization.
	MaxContentLength = 20000

	// MaxSuggestions caps how many tag suggestions are returned.
	MaxSuggestions = 10
)

// ImageLabeler は画像からラベルを検出するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ImageLabeler interface {
	// DetectLabels は画像バイト列からラベルを検出し、検出結果を返します。
	DetectLabels(ctx context.Context, imageData []byte) ([]entity.TagSuggestion, error)
}

// Summarizer は本文サマリーを生成するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Summarizer interface {
	// Summarize はプロンプトからサマリーを生成します。
	Summarize(ctx context.Context, prompt string) (string, error)
}

// tagsuggestUsecase は画像タグ提案・本文サマリー生成のビジネスロジックを提供します。
type tagsuggestUsecase struct {
	labeler    ImageLabeler
	summarizer Summarizer
}

// NewTagSuggestUsecase はtagsuggestUsecaseの新しいインスタンスを生成します。
func NewTagSuggestUsecase(labeler ImageLabeler, summarizer Summarizer) *tagsuggestUsecase {
	return &tagsuggestUsecase{labeler: labeler, summarizer: summarizer}
}

// SuggestTags proposes post tags for an uploaded image. Labels come back
// lowercased, deduplicated and capped at MaxSuggestions.
func (u *tagsuggestUsecase) SuggestTags(ctx context.Context, imageData []byte) ([]entity.TagSuggestion, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	}

	labels, err := u.labeler.DetectLabels(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("label detection failed: %w", err)
	}

	seen := map[string]struct{}{}
	out := make([]entity.TagSuggestion, 0, len(labels))
	for _, l := range labels {
		label := strings.ToLower(strings.TrimSpace(l.Label))
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, entity.TagSuggestion{Label: label, Confidence: l.Confidence})
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out, nil
}

// SummarizeContent drafts a one-paragraph summary of a post body.
func (u *tagsuggestUsecase) SummarizeContent(ctx context.Context, content string) (*entity.Summary, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters", MaxContentLength)
	}

	prompt := fmt.Sprintf(SummaryPromptTemplate, content)
	text, err := u.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("summarizer failed: %w", err)
	}
	return &entity.Summary{Text: text}, nil
}
