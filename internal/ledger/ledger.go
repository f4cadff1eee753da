// Package ledger maintains a client-local, eventually-backend-consistent view
// of per-student fee rows and school-wide totals.
//
// The ledger applies optimistic in-place patches after each successful payment
// mutation: the visible table and the visible totals never desynchronize from
// each other, even though both may lag the backend between mutations.
// Reconcile replaces the local aggregates with a server-confirmed recompute;
// a generation counter discards responses that land after their dialog closed.
package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/krushnaz/teachove-fees/internal/models"
	"github.com/krushnaz/teachove-fees/internal/notify"
)

// FeeAPI is the remote fee endpoint surface the ledger depends on.
// *api.Client satisfies it.
type FeeAPI interface {
	SummaryBySchool(ctx context.Context, schoolID string) (*models.FeeSummary, error)
	StudentPayments(ctx context.Context, schoolID, studentID, classID string) ([]models.Payment, error)
	AddPayment(ctx context.Context, form models.PaymentForm) (*models.Payment, error)
	UpdatePayment(ctx context.Context, schoolID, paymentID string, update models.PaymentUpdate) (*models.Payment, error)
	DeletePayments(ctx context.Context, schoolID string, paymentIDs []string) error
	ClassReport(ctx context.Context, schoolID, classID string, w io.Writer) error
	StudentReport(ctx context.Context, schoolID, studentID string, w io.Writer) error
}

// ClassDirectory resolves a school's classrooms. *api.Client satisfies it.
type ClassDirectory interface {
	ClassesBySchool(ctx context.Context, schoolID string) ([]models.Classroom, error)
}

// PaymentInput is the user-facing payment form: the fields an operator fills
// in. Identity fields are supplied by the ledger from the owning row.
type PaymentInput struct {
	Amount        decimal.Decimal
	Mode          models.PaymentMode
	TransactionID string
	Remarks       string
	Date          time.Time
}

// Ledger is the fee ledger view model for one school.
type Ledger struct {
	schoolID      string
	fees          FeeAPI
	classes       ClassDirectory
	notifier      notify.Notifier
	autoReconcile bool

	mu        sync.Mutex
	loaded    bool
	rows      []*models.StudentFeeRow
	index     map[string]*models.StudentFeeRow
	totals    models.Totals
	gen       uint64
	downloads map[string]bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithNotifier routes user-visible notifications (the toast equivalent) to n.
func WithNotifier(n notify.Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

// WithAutoReconcile re-fetches the authoritative summary after every
// successful mutation, closing the optimistic-drift window at the cost of one
// extra request per mutation.
func WithAutoReconcile() Option {
	return func(l *Ledger) { l.autoReconcile = true }
}

// New creates a ledger for the given school. Call Load before anything else.
func New(schoolID string, fees FeeAPI, classes ClassDirectory, opts ...Option) *Ledger {
	l := &Ledger{
		schoolID:  schoolID,
		fees:      fees,
		classes:   classes,
		notifier:  notify.LogNotifier{},
		index:     make(map[string]*models.StudentFeeRow),
		downloads: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches classrooms and the fee summary concurrently and builds the
// row set. On failure the ledger stays (or becomes) unloaded and Load can be
// re-run; rows remain empty until a load succeeds.
func (l *Ledger) Load(ctx context.Context) error {
	var (
		wg         sync.WaitGroup
		summary    *models.FeeSummary
		classrooms []models.Classroom
		sumErr     error
		classErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		summary, sumErr = l.fees.SummaryBySchool(ctx, l.schoolID)
	}()
	go func() {
		defer wg.Done()
		classrooms, classErr = l.classes.ClassesBySchool(ctx, l.schoolID)
	}()
	wg.Wait()

	if sumErr != nil {
		l.notifyError("Failed to load fee summary")
		return fmt.Errorf("load summary: %w", sumErr)
	}
	if classErr != nil {
		l.notifyError("Failed to load classrooms")
		return fmt.Errorf("load classrooms: %w", classErr)
	}

	byClass := classKey(classrooms)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = make([]*models.StudentFeeRow, 0, len(summary.Students))
	l.index = make(map[string]*models.StudentFeeRow, len(summary.Students))
	for _, s := range summary.Students {
		row := s
		if row.ClassID == "" {
			// Resolved once at load; rows that stay unresolved cannot
			// accept payment mutations.
			row.ClassID = byClass[row.ClassName+"\x00"+row.Division]
		}
		l.rows = append(l.rows, &row)
		l.index[row.StudentID] = &row
	}
	l.totals = summary.Totals
	l.loaded = true
	return nil
}

func classKey(classrooms []models.Classroom) map[string]string {
	m := make(map[string]string, len(classrooms))
	for _, c := range classrooms {
		m[c.Name+"\x00"+c.Division] = c.ID
	}
	return m
}

// Loaded reports whether a load has succeeded.
func (l *Ledger) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Rows returns a snapshot copy of all ledger rows.
func (l *Ledger) Rows() []models.StudentFeeRow {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.StudentFeeRow, len(l.rows))
	for i, r := range l.rows {
		out[i] = *r
	}
	return out
}

// Row returns a snapshot of one student's row.
func (l *Ledger) Row(studentID string) (models.StudentFeeRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	row, ok := l.index[studentID]
	if !ok {
		return models.StudentFeeRow{}, ErrUnknownStudent
	}
	return *row, nil
}

// Totals returns a snapshot of the school-wide aggregates.
func (l *Ledger) Totals() models.Totals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totals
}

// AddPayment records a new payment for a student and, on success, increments
// that row's paid amount and the school totals by exactly the paid amount.
// On failure local state is untouched; no partial mutation is applied.
func (l *Ledger) AddPayment(ctx context.Context, studentID string, in PaymentInput) error {
	form, gen, err := l.prepareAdd(studentID, in)
	if err != nil {
		return err
	}
	if err := models.Validate(form); err != nil {
		return err
	}

	created, err := l.fees.AddPayment(ctx, form)
	if err != nil {
		l.notifyError("Failed to add payment")
		return fmt.Errorf("add payment: %w", err)
	}
	if !l.applyDelta(studentID, created.Amount, gen) {
		slog.Warn("discarding late add-payment response", "student_id", studentID, "payment_id", created.ID)
		return ErrStaleSession
	}
	l.notifySuccess("Payment added")
	l.maybeReconcile(ctx)
	return nil
}

func (l *Ledger) prepareAdd(studentID string, in PaymentInput) (models.PaymentForm, uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return models.PaymentForm{}, 0, ErrNotLoaded
	}
	row, ok := l.index[studentID]
	if !ok {
		return models.PaymentForm{}, 0, ErrUnknownStudent
	}
	if row.ClassID == "" {
		return models.PaymentForm{}, 0, ErrClassUnresolved
	}
	return models.PaymentForm{
		SchoolID:      l.schoolID,
		StudentID:     studentID,
		ClassID:       row.ClassID,
		Amount:        in.Amount,
		Mode:          in.Mode,
		TransactionID: in.TransactionID,
		Remarks:       in.Remarks,
		Date:          in.Date,
	}, l.gen, nil
}

// applyDelta patches a row and the totals by the exact delta of one mutation.
// Returns false when the generation moved on (dialog closed mid-flight): the
// patch is discarded so a late response cannot corrupt the view.
func (l *Ledger) applyDelta(studentID string, delta decimal.Decimal, gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	row, ok := l.index[studentID]
	if !ok {
		return false
	}
	row.PaidFees = row.PaidFees.Add(delta)
	l.totals.Received = l.totals.Received.Add(delta)
	l.totals.Remaining = l.totals.Remaining.Sub(delta)
	return true
}

// Reconcile replaces the local paid amounts and totals with the authoritative
// summary. Resolved class ids are kept; no generation change, pending dialog
// sessions stay valid.
func (l *Ledger) Reconcile(ctx context.Context) error {
	summary, err := l.fees.SummaryBySchool(ctx, l.schoolID)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range summary.Students {
		if row, ok := l.index[s.StudentID]; ok {
			row.PaidFees = s.PaidFees
			row.TotalFees = s.TotalFees
		}
	}
	l.totals = summary.Totals
	return nil
}

func (l *Ledger) maybeReconcile(ctx context.Context) {
	if !l.autoReconcile {
		return
	}
	if err := l.Reconcile(ctx); err != nil {
		// Optimistic values are already applied; drift closes on next load.
		slog.Warn("post-mutation reconcile failed", "school_id", l.schoolID, "error", err)
	}
}

// InvalidatePending discards any in-flight mutation results, e.g. when the
// operator navigates away from the fees view.
func (l *Ledger) InvalidatePending() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
}

// DownloadClassReport streams the class-level report to w. A second download
// of the same report while one is running is rejected so the UI can keep a
// distinct loading indicator per action.
func (l *Ledger) DownloadClassReport(ctx context.Context, classID string, w io.Writer) error {
	key := "class:" + classID
	if err := l.beginDownload(key); err != nil {
		return err
	}
	defer l.endDownload(key)
	if err := l.fees.ClassReport(ctx, l.schoolID, classID, w); err != nil {
		l.notifyError("Failed to download class report")
		return fmt.Errorf("class report: %w", err)
	}
	return nil
}

// DownloadStudentReport streams the student-level report to w.
func (l *Ledger) DownloadStudentReport(ctx context.Context, studentID string, w io.Writer) error {
	key := "student:" + studentID
	if err := l.beginDownload(key); err != nil {
		return err
	}
	defer l.endDownload(key)
	if err := l.fees.StudentReport(ctx, l.schoolID, studentID, w); err != nil {
		l.notifyError("Failed to download student report")
		return fmt.Errorf("student report: %w", err)
	}
	return nil
}

// DownloadInFlight reports whether the given report download is running.
// Keys are "class:<classId>" and "student:<studentId>".
func (l *Ledger) DownloadInFlight(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.downloads[key]
}

func (l *Ledger) beginDownload(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.downloads[key] {
		return ErrReportInFlight
	}
	l.downloads[key] = true
	return nil
}

func (l *Ledger) endDownload(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.downloads, key)
}

func (l *Ledger) notifyError(msg string) {
	l.notifier.Notify(notify.Notification{Message: msg, Kind: notify.KindError})
}

func (l *Ledger) notifySuccess(msg string) {
	l.notifier.Notify(notify.Notification{Message: msg, Kind: notify.KindSuccess})
}
