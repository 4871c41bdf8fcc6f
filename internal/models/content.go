package models

import (
	"fmt"
	"strings"
	"time"
)

// Term is a taxonomy term. Terms in the keywords vocabulary share their name
// with a bot category.
type Term struct {
	ID         int64     `json:"id"`
	Vocabulary string    `json:"vocabulary"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Node is a published content item.
type Node struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	PathAlias *string   `json:"path_alias"`
	CreatedAt time.Time `json:"created_at"`
}

// CanonicalPath is the alias when one is set, otherwise /node/{id}. The
// result always starts with a slash.
func (n *Node) CanonicalPath() string {
	if n.PathAlias != nil && *n.PathAlias != "" {
		if !strings.HasPrefix(*n.PathAlias, "/") {
			return "/" + *n.PathAlias
		}
		return *n.PathAlias
	}
	return fmt.Sprintf("/node/%d", n.ID)
}
