package threads

import (
	"fmt"
	"testing"
	"time"

	"github.com/blog-personal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)

func comment(id int64, parent *int64, minute int) *models.CommentView {
	return &models.CommentView{
		ID:         id,
		PostID:     1,
		ParentID:   parent,
		AuthorName: fmt.Sprintf("user-%d", id),
		Body:       fmt.Sprintf("comment %d", id),
		CreatedAt:  base.Add(time.Duration(minute) * time.Minute),
	}
}

func ref(id int64) *int64 { return &id }

func ids(nodes []*models.CommentView) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuild_NestsReplies(t *testing.T) {
	input := []*models.CommentView{
		comment(1, nil, 0),
		comment(2, ref(1), 1),
		comment(3, ref(1), 2),
		comment(4, ref(2), 3),
	}

	roots, err := Build(input)
	require.NoError(t, err)

	require.Equal(t, []int64{1}, ids(roots))
	assert.Equal(t, []int64{2, 3}, ids(roots[0].Replies))
	assert.Equal(t, []int64{4}, ids(roots[0].Replies[0].Replies))
	assert.Empty(t, roots[0].Replies[1].Replies)
	assert.NotNil(t, roots[0].Replies[1].Replies, "leaves carry an empty reply list")
}

func TestBuild_OrdersByCreationTime(t *testing.T) {
	input := []*models.CommentView{
		comment(5, nil, 10),
		comment(3, ref(5), 12),
		comment(1, nil, 0),
		comment(2, ref(5), 11),
		comment(6, nil, 10), // same instant as 5, ordered by id
	}

	roots, err := Build(input)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 5, 6}, ids(roots))
	assert.Equal(t, []int64{2, 3}, ids(roots[1].Replies))
}

func TestBuild_DoesNotModifyInput(t *testing.T) {
	input := []*models.CommentView{
		comment(2, ref(1), 1),
		comment(1, nil, 0),
	}

	roots, err := Build(input)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	assert.Equal(t, int64(2), input[0].ID, "input order is preserved")
	assert.Nil(t, input[0].Replies)
	assert.Nil(t, input[1].Replies)
	assert.NotSame(t, input[1], roots[0])
}

func TestBuild_Empty(t *testing.T) {
	roots, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestBuild_IntegrityErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   []*models.CommentView
		wantErr error
	}{
		{
			name:    "self parent",
			input:   []*models.CommentView{comment(1, nil, 0), comment(2, ref(2), 1)},
			wantErr: ErrCommentCycle,
		},
		{
			name: "two-node cycle",
			input: []*models.CommentView{
				comment(1, nil, 0),
				comment(2, ref(3), 1),
				comment(3, ref(2), 2),
			},
			wantErr: ErrCommentCycle,
		},
		{
			name: "reply below a cycle",
			input: []*models.CommentView{
				comment(2, ref(3), 1),
				comment(3, ref(2), 2),
				comment(4, ref(3), 3),
			},
			wantErr: ErrCommentCycle,
		},
		{
			name:    "dangling parent",
			input:   []*models.CommentView{comment(1, nil, 0), comment(2, ref(99), 1)},
			wantErr: ErrDanglingParent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := Build(tt.input)
			require.Error(t, err)
			assert.Nil(t, roots)
			assert.ErrorIs(t, err, tt.wantErr)

			var integrity *IntegrityError
			assert.ErrorAs(t, err, &integrity)
		})
	}
}

func BenchmarkBuild(b *testing.B) {
	// 1000 comments: 100 roots with chains of nine replies each
	input := make([]*models.CommentView, 0, 1000)
	for r := 0; r < 100; r++ {
		rootID := int64(r*10 + 1)
		input = append(input, comment(rootID, nil, r*10))
		for d := 1; d < 10; d++ {
			input = append(input, comment(rootID+int64(d), ref(rootID+int64(d-1)), r*10+d))
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := Build(input); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(len(input)*b.N)/b.Elapsed().Seconds(), "comments/sec")
}
