package domain

import (
	"crypto/md5"

	"github.com/google/uuid"
)

// Task is the only persisted entity. An empty ID means "not assigned yet".
type Task struct {
	ID    string `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
}

// TaskID derives the name-based id for a title: MD5 of the raw bytes with the
// version 3 and RFC 4122 variant bits set, without a namespace prefix.
func TaskID(title string) string {
	sum := md5.Sum([]byte(title))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.UUID(sum).String()
}

// WithDerivedID returns t with ID filled from the title when it is empty.
func (t Task) WithDerivedID() Task {
	if t.ID == "" {
		t.ID = TaskID(t.Title)
	}
	return t
}
