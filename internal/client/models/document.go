package models

import (
	"io"
	"time"
)

// Document status values accepted by the API.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Document mirrors the API's document record. The JSON keys are the
// server's.
type Document struct {
	ID        ID        `json:"id"`
	Title     string    `json:"judul"`
	Author    string    `json:"penulis"`
	Category  string    `json:"jenis_file"`
	FilePath  string    `json:"file_path,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentForm is the multipart payload for create and update. File is
// optional on update; when set, FileName names the upload.
type DocumentForm struct {
	Title    string
	Author   string
	Category string
	Status   string
	FileName string
	File     io.Reader
}
