package thread

import (
	"fmt"
	"strings"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
)

const (
	userPrefix = "user_"
	anonPrefix = "anon_"
	postInfix  = "_post_"
)

// Participant is whoever writes a comment: a signed-in user or an anonymous
// browser session. Exactly one field is set.
type Participant struct {
	UserID      string
	AnonymousID string
}

func User(id string) Participant      { return Participant{UserID: id} }
func Anonymous(id string) Participant { return Participant{AnonymousID: id} }

func (p Participant) Validate() error {
	if (p.UserID == "") == (p.AnonymousID == "") {
		return ErrInvalidParticipant
	}
	return nil
}

func (p Participant) IsAnonymous() bool { return p.UserID == "" && p.AnonymousID != "" }

// ID returns the identifier that is set, whichever kind it is.
func (p Participant) ID() string {
	if p.UserID != "" {
		return p.UserID
	}
	return p.AnonymousID
}

// Wrote reports whether c was written by p.
func (p Participant) Wrote(c models.Comment) bool {
	if p.UserID != "" {
		return c.UserID != nil && *c.UserID == p.UserID
	}
	return p.AnonymousID != "" && c.AnonymousID != nil && *c.AnonymousID == p.AnonymousID
}

// Stamp copies p's identity onto c.
func (p Participant) Stamp(c *models.Comment) {
	c.UserID, c.AnonymousID = nil, nil
	if p.UserID != "" {
		id := p.UserID
		c.UserID = &id
		return
	}
	id := p.AnonymousID
	c.AnonymousID = &id
}

// ParticipantOf recovers the participant recorded on c.
func ParticipantOf(c models.Comment) Participant {
	var p Participant
	if c.UserID != nil {
		p.UserID = *c.UserID
	}
	if c.AnonymousID != nil {
		p.AnonymousID = *c.AnonymousID
	}
	return p
}

// Key returns the thread key for p on postID. It is a pure function of its
// inputs; the same pair always maps to the same thread.
func Key(postID string, p Participant) string {
	if p.UserID != "" {
		return userPrefix + p.UserID + postInfix + postID
	}
	return anonPrefix + p.AnonymousID + postInfix + postID
}

// ParseKey splits a thread key back into its participant and post.
func ParseKey(key string) (Participant, string, error) {
	var p Participant
	var rest string
	switch {
	case strings.HasPrefix(key, userPrefix):
		rest = strings.TrimPrefix(key, userPrefix)
	case strings.HasPrefix(key, anonPrefix):
		rest = strings.TrimPrefix(key, anonPrefix)
	default:
		return p, "", fmt.Errorf("parse thread key %q: %w", key, ErrInvalidThread)
	}

	i := strings.LastIndex(rest, postInfix)
	if i <= 0 || i+len(postInfix) == len(rest) {
		return p, "", fmt.Errorf("parse thread key %q: %w", key, ErrInvalidThread)
	}
	id, postID := rest[:i], rest[i+len(postInfix):]

	if strings.HasPrefix(key, userPrefix) {
		p.UserID = id
	} else {
		p.AnonymousID = id
	}
	return p, postID, nil
}
