package thread

import (
	"context"
	"fmt"
)

// AuthorLookup resolves the author of a post. It returns ErrPostNotFound when
// the post does not exist.
type AuthorLookup interface {
	PostAuthor(ctx context.Context, postID string) (string, error)
}

// Authorize checks that candidate may write an author reply into threadKey on
// postID. The key must name a thread of that post and candidate must be the
// post's author.
func Authorize(ctx context.Context, posts AuthorLookup, postID, threadKey, candidate string) error {
	_, keyPost, err := ParseKey(threadKey)
	if err != nil {
		return err
	}
	if keyPost != postID {
		return ErrInvalidThread
	}

	author, err := posts.PostAuthor(ctx, postID)
	if err != nil {
		return fmt.Errorf("looking up post author: %w", err)
	}
	if candidate == "" || candidate != author {
		return ErrNotAuthorized
	}
	return nil
}
