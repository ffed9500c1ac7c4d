package thread

import "errors"

var (
	ErrQuotaExceeded      = errors.New("comment quota exceeded for this thread")
	ErrNotAuthorized      = errors.New("only the post author may reply in a thread")
	ErrInvalidContent     = errors.New("comment content is empty or too long")
	ErrInvalidParticipant = errors.New("participant must be exactly one of user or anonymous session")
	ErrInvalidThread      = errors.New("thread key does not belong to this post")
	ErrPostNotFound       = errors.New("post not found")
)

// Rejected reports whether err is an expected refusal rather than a fault.
func Rejected(err error) bool {
	return errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrNotAuthorized) ||
		errors.Is(err, ErrInvalidContent) ||
		errors.Is(err, ErrInvalidParticipant) ||
		errors.Is(err, ErrInvalidThread) ||
		errors.Is(err, ErrPostNotFound)
}
