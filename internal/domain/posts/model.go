package posts

import "time"

// Post es una publicación del feed comunitario.
type Post struct {
	ID           string
	AuthorUserID string
	Content      string

	// Likes es el set de usuarios que dieron like (userID -> true).
	// Nunca es nil. Toggle optimista: última escritura gana.
	Likes map[string]bool

	CreatedAt time.Time
}

// LikedBy indica si userID dio like al post.
func (p Post) LikedBy(userID string) bool {
	return p.Likes[userID]
}
