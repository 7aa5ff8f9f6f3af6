// Package entity defines the domain models for the posts feature.
package entity

import "time"

// ImageRef points at an uploaded image attached to a post. The three fields
// travel together: a post either has all of them or none of them.
type ImageRef struct {
	// URL is the storage-relative path the file is served under (e.g. /uploads/xxx.png).
	URL string

	// MIME is the declared content type of the uploaded file.
	MIME string

	// Name is the original filename as sent by the client.
	Name string
}

// Post represents a blog article.
// Author is free text, not a reference to a registered user.
type Post struct {
	ID          uint
	Title       string
	Content     string
	Author      string
	PublishedAt time.Time

	// Tags is an ordered list of non-empty labels. Order is preserved for
	// display but carries no further meaning.
	Tags []string

	// Image is nil when the post has no attached image.
	Image *ImageRef
}

// PostPage is one page of a filtered post listing.
type PostPage struct {
	Items []Post
	Total int64
	Page  int
	Pages int
}
