package dto

import "io"

type CreateArticleInput struct {
	Title   string `form:"title" binding:"required,max=100"`
	Content string `form:"content" binding:"required"`
}

// CoverFile represents an uploaded cover image.
type CoverFile struct {
	Reader      io.Reader
	FileName    string
	ContentType string
	Size        int64
}
