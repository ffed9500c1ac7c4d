package thread

import (
	"sort"
	"time"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
)

// Thread is the read-side view of one conversation on a post.
type Thread struct {
	Key              string           `json:"thread_key"`
	Comments         []models.Comment `json:"comments"`
	ViewerCanReply   bool             `json:"viewer_can_reply"`
	ViewerReplyCount int              `json:"viewer_reply_count"`
	LastActivity     time.Time        `json:"last_activity"`
}

// Started is the creation time of the thread's first comment.
func (t Thread) Started() time.Time {
	if len(t.Comments) == 0 {
		return time.Time{}
	}
	return t.Comments[0].CreatedAt
}

// Partition groups the comments of one post into threads.
//
// comments must already be ordered by creation time; order inside a group is
// kept as given. Threads come back oldest first, ties keeping the order in
// which their first comment appeared.
func Partition(postID string, comments []models.Comment) []Thread {
	if len(comments) == 0 {
		return []Thread{}
	}

	index := make(map[string]int)
	var threads []Thread
	for _, c := range comments {
		key := keyOf(postID, c)
		i, ok := index[key]
		if !ok {
			i = len(threads)
			index[key] = i
			threads = append(threads, Thread{Key: key})
		}
		threads[i].Comments = append(threads[i].Comments, c)
	}

	for i := range threads {
		threads[i].LastActivity = threads[i].Comments[len(threads[i].Comments)-1].CreatedAt
	}

	sort.SliceStable(threads, func(a, b int) bool {
		return threads[a].Started().Before(threads[b].Started())
	})
	return threads
}

// keyOf picks the grouping key for c. Rows written before thread keys existed
// are regrouped under the key their participant would get today; the legacy
// parent reference plays no part.
func keyOf(postID string, c models.Comment) string {
	if c.ThreadKey != "" {
		return c.ThreadKey
	}
	if p := ParticipantOf(c); p.Validate() == nil {
		return Key(postID, p)
	}
	return "comment_" + c.ID
}

// annotate fills the viewer-specific fields of t.
func (t *Thread) annotate(viewer *Participant) {
	t.ViewerReplyCount = 0
	t.ViewerCanReply = false
	if viewer == nil || viewer.Validate() != nil {
		return
	}
	t.ViewerReplyCount = countOwn(t.Comments, *viewer)
	t.ViewerCanReply = t.ViewerReplyCount < Quota
}
