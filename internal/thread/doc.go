// Package thread implements comment threading for posts.
//
// A thread is every comment exchanged between one participant and a post's
// author. Its identity is a key derived from the post and the participant, so
// threads are never stored, only computed from the flat comment list. Visitors
// get a fixed number of messages per thread; the author may reply without
// limit, and every accepted message notifies the author unless they wrote it.
package thread
