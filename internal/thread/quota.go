package thread

import (
	"context"
	"fmt"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
)

// Quota is how many messages a participant may write in one thread. Author
// replies are not counted.
const Quota = 3

// Counter reports how many non-author comments a participant has on a post.
// Implementations must read from the store, never from a cache.
type Counter interface {
	CountComments(ctx context.Context, postID string, p Participant) (int, error)
}

// CheckQuota reads the participant's current count and refuses once it has
// reached Quota. It returns the count it saw.
func CheckQuota(ctx context.Context, counter Counter, postID string, p Participant) (int, error) {
	n, err := counter.CountComments(ctx, postID, p)
	if err != nil {
		return 0, fmt.Errorf("counting comments: %w", err)
	}
	if n >= Quota {
		return n, ErrQuotaExceeded
	}
	return n, nil
}

// Remaining is the number of messages still allowed after count.
func Remaining(count int) int {
	if count >= Quota {
		return 0
	}
	return Quota - count
}

func countOwn(comments []models.Comment, p Participant) int {
	n := 0
	for _, c := range comments {
		if !c.IsAuthorReply && p.Wrote(c) {
			n++
		}
	}
	return n
}
