package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchconnect/internal/domain"
)

func TestTopicService_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []string
		inserts int
	}{
		{"trims and keeps order", []string{" Hope ", "Faith"}, []string{"Hope", "Faith"}, 2},
		{"drops blanks", []string{"", "  ", "Hope"}, []string{"Hope"}, 1},
		{"case-insensitive duplicates keep first spelling", []string{"Faith", "FAITH", "faith"}, []string{"Faith"}, 1},
		{"empty input", nil, []string{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTopicRepo()
			svc := NewTopicService(repo, newFakeSermonRepo(), time.Second)

			refs, err := svc.Resolve(context.Background(), tt.input)
			require.NoError(t, err)
			names := make([]string, 0, len(refs))
			for _, ref := range refs {
				assert.NotZero(t, ref.ID)
				names = append(names, ref.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, tt.inserts, repo.inserts)
		})
	}
}

func TestTopicService_Resolve_existingTopicNotDuplicated(t *testing.T) {
	repo := newFakeTopicRepo()
	svc := NewTopicService(repo, newFakeSermonRepo(), time.Second)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, []string{"Prayer"})
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, []string{" prayer "})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.inserts)
}

func TestTopicService_Resolve_repoError(t *testing.T) {
	repo := newFakeTopicRepo()
	repo.err = errors.New("db down")
	svc := NewTopicService(repo, newFakeSermonRepo(), time.Second)

	_, err := svc.Resolve(context.Background(), []string{"Prayer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Prayer")
}

func TestTopicService_GetAndSermons(t *testing.T) {
	sermonSvc, sermons, topics := newTestSermonService()
	topicSvc := NewTopicService(topics, sermons, time.Second)
	ctx := context.Background()

	_, err := sermonSvc.Create(ctx, sermonInput("Grace", testNow, "Faith"))
	require.NoError(t, err)
	_, err = sermonSvc.Create(ctx, sermonInput("Mercy", testNow.AddDate(0, 0, -7), "Hope"))
	require.NoError(t, err)
	topics.counts[1] = 1

	topic, count, err := topicSvc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Faith", topic.Name())
	assert.Equal(t, 1, count)

	list, err := topicSvc.Sermons(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Grace", list[0].Projection().Title)
	assert.Equal(t, int64(1), sermons.lastFilter.TopicID)

	_, _, err = topicSvc.Get(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = topicSvc.Sermons(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTopicService_List(t *testing.T) {
	repo := newFakeTopicRepo()
	svc := NewTopicService(repo, newFakeSermonRepo(), time.Second)
	ctx := context.Background()
	refs, err := svc.Resolve(ctx, []string{"Hope", "Faith"})
	require.NoError(t, err)
	repo.counts[refs[0].ID] = 3

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Faith", list[0].Topic.Name())
	assert.Equal(t, 0, list[0].SermonCount)
	assert.Equal(t, "Hope", list[1].Topic.Name())
	assert.Equal(t, 3, list[1].SermonCount)
}
