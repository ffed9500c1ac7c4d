package thread

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countFunc func(ctx context.Context, postID string, p Participant) (int, error)

func (f countFunc) CountComments(ctx context.Context, postID string, p Participant) (int, error) {
	return f(ctx, postID, p)
}

func fixedCount(n int) Counter {
	return countFunc(func(context.Context, string, Participant) (int, error) { return n, nil })
}

func TestCheckQuota(t *testing.T) {
	ctx := context.Background()
	for n := 0; n < Quota; n++ {
		got, err := CheckQuota(ctx, fixedCount(n), "p1", Anonymous("a1"))
		assert.NoError(t, err, "count %d", n)
		assert.Equal(t, n, got)
	}

	got, err := CheckQuota(ctx, fixedCount(Quota), "p1", Anonymous("a1"))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, Quota, got)

	_, err = CheckQuota(ctx, fixedCount(Quota+4), "p1", Anonymous("a1"))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestCheckQuotaStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := CheckQuota(context.Background(), countFunc(func(context.Context, string, Participant) (int, error) {
		return 0, boom
	}), "p1", User("u1"))
	assert.ErrorIs(t, err, boom)
	assert.False(t, Rejected(err))
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 3, Remaining(0))
	assert.Equal(t, 1, Remaining(2))
	assert.Equal(t, 0, Remaining(3))
	assert.Equal(t, 0, Remaining(7))
}
