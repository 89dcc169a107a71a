package feedview

import (
	"context"
	"log"
	"sort"
)

// PageSize is the fixed number of records shown per page.
const PageSize = 5

// Phase is the view's fetch lifecycle state.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseLoading
	PhaseError
)

// deletePhase tags the deletion state machine. The staged id is only
// meaningful outside deleteIdle, which keeps the illegal
// dialog-without-id combination unrepresentable through the View API.
type deletePhase int

const (
	deleteIdle deletePhase = iota
	deleteConfirming
	deleteResolving
)

type deletion struct {
	phase      deletePhase
	feedbackID string
}

// View holds the in-memory collection, the pagination cursor and the
// deletion state machine. It is not safe for concurrent use; all
// transitions are expected to happen on a single event loop.
type View struct {
	api    API
	logger *log.Logger

	feedbacks []Feedback
	page      int
	phase     Phase
	fetchErr  string
	del       deletion
	notice    string
}

func NewView(api API, logger *log.Logger) *View {
	if logger == nil {
		logger = log.Default()
	}
	return &View{
		api:    api,
		logger: logger,
		page:   1,
	}
}

// Refresh fetches the entire collection, sorts it most recent first and
// replaces the in-memory state wholesale. On failure the view enters
// the error state and keeps no partial data.
func (v *View) Refresh(ctx context.Context) error {
	v.phase = PhaseLoading
	v.fetchErr = ""
	v.notice = ""

	feedbacks, err := v.api.ListFeedbacks(ctx)
	if err != nil {
		v.feedbacks = nil
		v.phase = PhaseError
		v.fetchErr = err.Error()
		v.clampPage()
		return err
	}

	sort.SliceStable(feedbacks, func(i, j int) bool {
		return feedbacks[i].DateTime.After(feedbacks[j].DateTime)
	})

	v.feedbacks = feedbacks
	v.phase = PhaseReady
	v.clampPage()
	return nil
}

func (v *View) Phase() Phase { return v.phase }

// FetchError is the captured failure message; empty outside PhaseError.
func (v *View) FetchError() string { return v.fetchErr }

// Feedbacks returns the full sorted collection.
func (v *View) Feedbacks() []Feedback { return v.feedbacks }

// Page returns the visible slice for the current cursor; the last page
// may be partial.
func (v *View) Page() []Feedback {
	start := (v.page - 1) * PageSize
	if start >= len(v.feedbacks) {
		return nil
	}
	end := start + PageSize
	if end > len(v.feedbacks) {
		end = len(v.feedbacks)
	}
	return v.feedbacks[start:end]
}

func (v *View) PageNumber() int { return v.page }

// TotalPages is ceil(total/PageSize), and 1 for an empty collection.
func (v *View) TotalPages() int {
	if len(v.feedbacks) == 0 {
		return 1
	}
	return (len(v.feedbacks) + PageSize - 1) / PageSize
}

// Navigation. Each operation is an explicit no-op at its boundary so
// the cursor never leaves [1, TotalPages].

func (v *View) First() {
	v.page = 1
}

func (v *View) Prev() {
	if v.page > 1 {
		v.page--
	}
}

func (v *View) Next() {
	if v.page < v.TotalPages() {
		v.page++
	}
}

func (v *View) Last() {
	v.page = v.TotalPages()
}

// RequestDelete stages a record for deletion and opens the confirmation
// step. It is a no-op unless the deletion machine is idle.
func (v *View) RequestDelete(feedbackID string) {
	if v.del.phase != deleteIdle {
		return
	}
	v.del = deletion{phase: deleteConfirming, feedbackID: feedbackID}
}

// CancelDelete declines the confirmation: the staged id is cleared and
// nothing else changes.
func (v *View) CancelDelete() {
	if v.del.phase != deleteConfirming {
		return
	}
	v.del = deletion{}
}

// ConfirmDelete accepts the confirmation and issues the remote delete.
// The dialog closes and the staged id is cleared regardless of the
// outcome; the record leaves the collection only on success. A failure
// is logged and kept as a notice for rendering.
func (v *View) ConfirmDelete(ctx context.Context) error {
	if v.del.phase != deleteConfirming {
		return nil
	}

	id := v.del.feedbackID
	v.del.phase = deleteResolving

	err := v.api.DeleteFeedback(ctx, id)
	v.del = deletion{}

	if err != nil {
		v.logger.Printf("delete feedback %s failed: %v", id, err)
		v.notice = "Could not delete feedback: " + err.Error()
		return err
	}

	v.notice = ""
	v.removeFeedback(id)
	return nil
}

// ConfirmingID reports the staged record id and whether the
// confirmation dialog is visible.
func (v *View) ConfirmingID() (string, bool) {
	if v.del.phase == deleteConfirming {
		return v.del.feedbackID, true
	}
	return "", false
}

// Notice is a non-blocking message about the last failed delete; empty
// when the last delete succeeded.
func (v *View) Notice() string { return v.notice }

func (v *View) removeFeedback(id string) {
	for i, f := range v.feedbacks {
		if f.FeedbackID == id {
			v.feedbacks = append(v.feedbacks[:i], v.feedbacks[i+1:]...)
			break
		}
	}
	v.clampPage()
}

// clampPage keeps the cursor within [1, TotalPages] after the
// collection shrinks.
func (v *View) clampPage() {
	if pages := v.TotalPages(); v.page > pages {
		v.page = pages
	}
	if v.page < 1 {
		v.page = 1
	}
}
