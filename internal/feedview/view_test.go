package feedview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	feedbacks []Feedback
	listErr   error
	deleteErr error
	deleted   []string
}

func (f *fakeAPI) ListFeedbacks(ctx context.Context) ([]Feedback, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Feedback, len(f.feedbacks))
	copy(out, f.feedbacks)
	return out, nil
}

func (f *fakeAPI) DeleteFeedback(ctx context.Context, feedbackID string) error {
	f.deleted = append(f.deleted, feedbackID)
	return f.deleteErr
}

func makeFeedbacks(n int) []Feedback {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := make([]Feedback, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Feedback{
			FeedbackID: fmt.Sprintf("fb-%02d", i),
			Username:   fmt.Sprintf("user%d", i),
			Feedback:   "some feedback",
			Polarity:   "neutral",
			DateTime:   base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func newTestView(api API) *View {
	return NewView(api, log.New(io.Discard, "", 0))
}

func TestRefreshSortsMostRecentFirst(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(7)}
	view := newTestView(api)

	require.NoError(t, view.Refresh(context.Background()))
	assert.Equal(t, PhaseReady, view.Phase())

	got := view.Feedbacks()
	require.Len(t, got, 7)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].DateTime.After(got[i-1].DateTime),
			"display order must be non-increasing by timestamp")
	}
}

func TestRefreshFailureEntersErrorState(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(3)}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	api.listErr = errors.New("connection refused")
	err := view.Refresh(context.Background())
	require.Error(t, err)

	assert.Equal(t, PhaseError, view.Phase())
	assert.Equal(t, "connection refused", view.FetchError())
	assert.Empty(t, view.Feedbacks(), "error state keeps no partial data")
}

func TestPageCountAndBoundaries(t *testing.T) {
	tests := []struct {
		n     int
		pages int
	}{
		{0, 1},
		{1, 1},
		{5, 1},
		{6, 2},
		{12, 3},
		{25, 5},
	}
	for _, tt := range tests {
		api := &fakeAPI{feedbacks: makeFeedbacks(tt.n)}
		view := newTestView(api)
		require.NoError(t, view.Refresh(context.Background()))

		assert.Equal(t, tt.pages, view.TotalPages(), "n=%d", tt.n)

		view.Prev()
		assert.Equal(t, 1, view.PageNumber(), "prev at first page is a no-op")

		view.Last()
		assert.Equal(t, tt.pages, view.PageNumber())
		view.Next()
		assert.Equal(t, tt.pages, view.PageNumber(), "next at last page is a no-op")

		view.First()
		assert.Equal(t, 1, view.PageNumber())
	}
}

func TestPageSlicing(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(12)}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	assert.Len(t, view.Page(), 5)

	view.Next()
	assert.Equal(t, 2, view.PageNumber())
	assert.Len(t, view.Page(), 5)

	view.Next()
	assert.Equal(t, 3, view.PageNumber())
	assert.Len(t, view.Page(), 2, "last page is partial")

	// Pages never overlap and cover the collection in order.
	view.First()
	var seen []string
	for p := 0; p < view.TotalPages(); p++ {
		for _, f := range view.Page() {
			seen = append(seen, f.FeedbackID)
		}
		view.Next()
	}
	all := view.Feedbacks()
	require.Len(t, seen, len(all))
	for i, f := range all {
		assert.Equal(t, f.FeedbackID, seen[i])
	}
}

func TestEmptyCollectionKeepsCursorAtOne(t *testing.T) {
	api := &fakeAPI{}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	assert.Equal(t, 1, view.PageNumber())
	assert.Equal(t, 1, view.TotalPages())
	view.Next()
	view.Last()
	view.Prev()
	assert.Equal(t, 1, view.PageNumber())
	assert.Empty(t, view.Page())
}

func TestRefreshClampsCursorWhenCollectionShrinks(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(12)}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	view.Last()
	require.Equal(t, 3, view.PageNumber())

	api.feedbacks = nil
	require.NoError(t, view.Refresh(context.Background()))
	assert.Equal(t, 1, view.PageNumber(), "cursor is clamped to 1 for an empty collection")

	api.feedbacks = makeFeedbacks(12)
	require.NoError(t, view.Refresh(context.Background()))
	view.Last()
	api.feedbacks = makeFeedbacks(6)
	require.NoError(t, view.Refresh(context.Background()))
	assert.Equal(t, 2, view.PageNumber(), "cursor lands on the new last page")
	assert.Len(t, view.Page(), 1)

	api.listErr = errors.New("gone")
	require.Error(t, view.Refresh(context.Background()))
	assert.Equal(t, 1, view.PageNumber(), "error state empties the collection and resets the cursor")
}

func TestConfirmDeleteClampsCursorOnLastPage(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(6)}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	view.Last()
	require.Equal(t, 2, view.PageNumber())
	page := view.Page()
	require.Len(t, page, 1)

	view.RequestDelete(page[0].FeedbackID)
	require.NoError(t, view.ConfirmDelete(context.Background()))

	assert.Equal(t, 1, view.PageNumber(), "deleting the only record of the last page moves the cursor back")
	assert.LessOrEqual(t, view.PageNumber(), view.TotalPages())
	assert.Len(t, view.Page(), 5, "the remaining records are visible")
}

func TestRefreshClearsStaleNotice(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(3), deleteErr: errors.New("boom")}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	view.RequestDelete(view.Feedbacks()[0].FeedbackID)
	require.Error(t, view.ConfirmDelete(context.Background()))
	require.NotEmpty(t, view.Notice())

	require.NoError(t, view.Refresh(context.Background()))
	assert.Empty(t, view.Notice(), "a refresh discards the previous delete failure message")
}

func TestConfirmDeleteRemovesExactlyOne(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(8)}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	before := view.Feedbacks()
	target := before[3].FeedbackID

	view.RequestDelete(target)
	id, visible := view.ConfirmingID()
	require.True(t, visible)
	assert.Equal(t, target, id)

	require.NoError(t, view.ConfirmDelete(context.Background()))
	assert.Equal(t, []string{target}, api.deleted)

	_, visible = view.ConfirmingID()
	assert.False(t, visible, "dialog closes after confirm")

	after := view.Feedbacks()
	require.Len(t, after, 7)
	// Remaining records keep their relative order.
	var want []string
	for _, f := range before {
		if f.FeedbackID != target {
			want = append(want, f.FeedbackID)
		}
	}
	for i, f := range after {
		assert.Equal(t, want[i], f.FeedbackID)
	}
}

func TestCancelDeleteChangesNothing(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(8)}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))
	view.Next()

	before := view.Feedbacks()
	view.RequestDelete(before[0].FeedbackID)
	view.CancelDelete()

	_, visible := view.ConfirmingID()
	assert.False(t, visible)
	assert.Empty(t, api.deleted, "cancel makes no remote call")
	assert.Equal(t, 2, view.PageNumber(), "cursor is untouched")
	assert.Equal(t, before, view.Feedbacks())
}

func TestConfirmDeleteFailureKeepsRecordAndClosesDialog(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(4), deleteErr: errors.New("boom")}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	target := view.Feedbacks()[0].FeedbackID
	view.RequestDelete(target)

	err := view.ConfirmDelete(context.Background())
	require.Error(t, err)

	_, visible := view.ConfirmingID()
	assert.False(t, visible, "dialog closes even on failure")
	assert.Len(t, view.Feedbacks(), 4, "collection is left unchanged")
	assert.NotEmpty(t, view.Notice(), "failure is surfaced for rendering")

	// A later successful delete clears the notice.
	api.deleteErr = nil
	view.RequestDelete(target)
	require.NoError(t, view.ConfirmDelete(context.Background()))
	assert.Empty(t, view.Notice())
	assert.Len(t, view.Feedbacks(), 3)
}

func TestRequestDeleteWhileConfirmingIsIgnored(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(3)}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	first := view.Feedbacks()[0].FeedbackID
	second := view.Feedbacks()[1].FeedbackID

	view.RequestDelete(first)
	view.RequestDelete(second)

	id, visible := view.ConfirmingID()
	require.True(t, visible)
	assert.Equal(t, first, id, "the staged id is not overwritten")
}

func TestConfirmDeleteWithoutRequestIsNoop(t *testing.T) {
	api := &fakeAPI{feedbacks: makeFeedbacks(3)}
	view := newTestView(api)
	require.NoError(t, view.Refresh(context.Background()))

	require.NoError(t, view.ConfirmDelete(context.Background()))
	assert.Empty(t, api.deleted)
	assert.Len(t, view.Feedbacks(), 3)
}
