package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"creditscores/internal/api"
	"creditscores/internal/logging"
)

// Operator-facing notification texts.
const (
	msgAdded       = "Credit score added successfully!"
	msgAddFailed   = "Error adding credit score."
	msgUpdated     = "Credit score updated successfully!"
	msgUpdateFail  = "Error updating credit score."
	msgDeleted     = "Credit score deleted successfully!"
	msgDeleteFail  = "Error deleting credit score."
	msgFetchFailed = "Error fetching credit scores."
)

// Backend is the subset of the HTTP client the board needs.
type Backend interface {
	List(ctx context.Context) ([]api.CreditScore, error)
	Create(ctx context.Context, score, userID int64) (*api.CreateResponse, error)
	UpdateScore(ctx context.Context, id, score int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Mode selects what submitting the form does.
type Mode int

const (
	ModeAdd Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "add"
}

// Form is the add/edit modal state. Field values are kept as typed text.
type Form struct {
	Open     bool
	Mode     Mode
	Score    string
	UserID   string
	UpdateID int64
}

// Option customizes a Board.
type Option func(*Board)

// WithClock replaces time.Now for notification expiry.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// WithNotificationLifetime sets how long notifications stay visible.
func WithNotificationLifetime(d time.Duration) Option {
	return func(b *Board) {
		if d > 0 {
			b.lifetime = d
		}
	}
}

// WithLogger sets the logger used for failed operations.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Board is the credit score screen state.
type Board struct {
	backend  Backend
	logger   *slog.Logger
	now      func() time.Time
	lifetime time.Duration

	mu      sync.Mutex
	records []api.CreditScore
	form    Form
	note    *Notification
}

// NewBoard constructs an empty board backed by the given API.
func NewBoard(backend Backend, opts ...Option) *Board {
	b := &Board{
		backend:  backend,
		logger:   logging.NewNop(),
		now:      time.Now,
		lifetime: DefaultNotificationLifetime,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.NewComponentLogger(b.logger, "board")
	return b
}

// Mount loads the record set from the server, replacing local state. On
// failure the set is left empty and an error notification is shown.
func (b *Board) Mount(ctx context.Context) error {
	records, err := b.backend.List(ctx)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.records = nil
		b.logFailure("fetch credit scores failed", "board_fetch", err)
		b.notifyLocked(msgFetchFailed, SeverityError)
		return err
	}
	b.records = append([]api.CreditScore(nil), records...)
	return nil
}

// OpenAdd opens the form in add mode with empty fields.
func (b *Board) OpenAdd() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form = Form{Open: true, Mode: ModeAdd}
}

// OpenEdit opens the form in update mode pre-filled from the record with id.
func (b *Board) OpenEdit(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("credit score %d is not listed", id)
	}
	rec := b.records[idx]
	b.form = Form{
		Open:     true,
		Mode:     ModeUpdate,
		Score:    strconv.FormatInt(rec.Score, 10),
		UserID:   strconv.FormatInt(rec.UserID, 10),
		UpdateID: id,
	}
	return nil
}

// SetScore updates the score field of the open form.
func (b *Board) SetScore(value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form.Score = value
}

// SetUserID updates the user id field of the open form. Ignored in update mode.
func (b *Board) SetUserID(value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.form.Mode == ModeUpdate {
		return
	}
	b.form.UserID = value
}

// CloseForm dismisses the form without submitting.
func (b *Board) CloseForm() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form = Form{}
}

// Submit sends the open form to the server. Success closes the form and
// updates local state; failure shows an error and leaves the form open.
func (b *Board) Submit(ctx context.Context) error {
	b.mu.Lock()
	form := b.form
	b.mu.Unlock()

	if !form.Open {
		return errors.New("form is not open")
	}
	if form.Mode == ModeUpdate {
		return b.submitUpdate(ctx, form)
	}
	return b.submitAdd(ctx, form)
}

func (b *Board) submitAdd(ctx context.Context, form Form) error {
	resp, err := b.createFromForm(ctx, form)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.logFailure("add credit score failed", "board_add", err)
		b.notifyLocked(msgAddFailed, SeverityError)
		return err
	}
	b.records = append(b.records, resp.CreditScore)
	b.form = Form{}
	b.notifyLocked(msgAdded, SeveritySuccess)
	return nil
}

func (b *Board) createFromForm(ctx context.Context, form Form) (*api.CreateResponse, error) {
	score, err := parseField("score", form.Score)
	if err != nil {
		return nil, err
	}
	userID, err := parseField("user id", form.UserID)
	if err != nil {
		return nil, err
	}
	return b.backend.Create(ctx, score, userID)
}

func (b *Board) submitUpdate(ctx context.Context, form Form) error {
	score, err := parseField("score", form.Score)
	if err == nil {
		_, err = b.backend.UpdateScore(ctx, form.UpdateID, score)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.logFailure("update credit score failed", "board_update", err, logging.Int64(logging.FieldRecordID, form.UpdateID))
		b.notifyLocked(msgUpdateFail, SeverityError)
		return err
	}
	// The server may report zero changes if the record vanished; the local
	// copy is patched either way.
	if idx := b.indexLocked(form.UpdateID); idx >= 0 {
		b.records[idx].Score = score
	}
	b.form = Form{}
	b.notifyLocked(msgUpdated, SeveritySuccess)
	return nil
}

// Delete removes the record with id on the server and then locally.
func (b *Board) Delete(ctx context.Context, id int64) error {
	_, err := b.backend.Delete(ctx, id)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.logFailure("delete credit score failed", "board_delete", err, logging.Int64(logging.FieldRecordID, id))
		b.notifyLocked(msgDeleteFail, SeverityError)
		return err
	}
	if idx := b.indexLocked(id); idx >= 0 {
		b.records = append(b.records[:idx], b.records[idx+1:]...)
	}
	b.notifyLocked(msgDeleted, SeveritySuccess)
	return nil
}

// Records returns a copy of the local record set.
func (b *Board) Records() []api.CreditScore {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.CreditScore(nil), b.records...)
}

// Form returns the current form state.
func (b *Board) Form() Form {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.form
}

// Notification returns the visible notification, or nil once it has expired.
func (b *Board) Notification() *Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.note.expired(b.now()) {
		b.note = nil
		return nil
	}
	n := *b.note
	return &n
}

// Dismiss clears the notification slot.
func (b *Board) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.note = nil
}

func (b *Board) notifyLocked(message string, severity Severity) {
	b.note = &Notification{
		Message:   message,
		Severity:  severity,
		ExpiresAt: b.now().Add(b.lifetime),
	}
}

func (b *Board) indexLocked(id int64) int {
	for i, rec := range b.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) logFailure(msg, eventType string, err error, attrs ...logging.Attr) {
	attrs = append(attrs, logging.Error(err))
	logging.ErrorWithContext(b.logger, msg, eventType, attrs...)
}

func parseField(name, value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number: %q", name, value)
	}
	return n, nil
}
