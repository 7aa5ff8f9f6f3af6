// Package entity はtagsuggestフィーチャーのドメインモデルを定義します。
package entity

// TagSuggestion is one proposed tag for an uploaded image.
type TagSuggestion struct {
	// Label is the suggested tag text, lowercased for use as a post tag.
	Label string

	// Confidence is the detector's score in [0,1].
	Confidence float32
}

// Summary is a generated one-paragraph summary of a post body.
type Summary struct {
	Text string
}
