// Package wizard implements the multi-step order submission flow as an
// explicit state machine. Collaborators (order store, notifier, session) are
// injected so hosts and tests can substitute their own.
package wizard

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"

	"wifiric-backend/internal/domain"
)

// Step identifies the wizard's current position.
type Step int

const (
	StepOrderType Step = iota + 1
	StepProjectType
	StepSiteDetails
	StepContact
	StepRecap
	StepSuccess
)

// OrderType is the tier chosen on the first step.
type OrderType string

const (
	OrderTypeNone     OrderType = ""
	OrderTypeFree     OrderType = "free"
	OrderTypeAdvanced OrderType = "advanced"
)

// ProjectType is the kind of project chosen on the second step.
type ProjectType string

const (
	ProjectTypeNone    ProjectType = ""
	ProjectTypeBot     ProjectType = "bot"
	ProjectTypeWebsite ProjectType = "website"
)

// SubmissionState tracks the final submit action.
type SubmissionState int

const (
	SubmissionEditing SubmissionState = iota
	SubmissionSubmitting
	SubmissionSucceeded
	SubmissionFailed
)

// NextOutcome is the result of a Next transition.
type NextOutcome int

const (
	// NextBlocked means the transition was refused: validation failed, the
	// bot panel has no forward path, or the caller is unauthenticated.
	NextBlocked NextOutcome = iota
	// NextAdvanced means the wizard moved one step forward.
	NextAdvanced
	// NextRoutedToContact means the free tier short-circuited to the
	// contact flow; no order record is ever created on this path.
	NextRoutedToContact
)

// BackOutcome is the result of a Back transition.
type BackOutcome int

const (
	// BackSteppedBack means the wizard moved one step backward.
	BackSteppedBack BackOutcome = iota
	// BackExited means the wizard handed control back to the host page.
	BackExited
)

// Session is the authenticated identity the wizard stamps onto submissions.
type Session struct {
	UserID   string
	Username string
}

// OrderStore is the persistence collaborator.
type OrderStore interface {
	Exists(ctx context.Context, orderRef string) (bool, error)
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
}

// NotificationRequest is the explicit payload handed to the notifier on
// submit success.
type NotificationRequest struct {
	OrderRef             string
	SiteType             string
	SiteTypeOther        string
	SiteName             string
	LogoURLs             []string
	PrimaryColor         string
	SecondaryColor       string
	OtherColors          []string
	SpecificInstructions string
	Description          string
	Budget               *float64
	BudgetText           string
	FullName             string
	Email                string
}

// Notifier is the notification collaborator. Failures are logged and never
// affect the submission result.
type Notifier interface {
	NotifyOrder(ctx context.Context, req NotificationRequest) error
}

// Draft is the form state accumulated across steps. It lives in memory only;
// nothing is persisted until submit succeeds.
type Draft struct {
	OrderType            OrderType
	ProjectType          ProjectType
	SiteType             string
	SiteTypeOther        string
	SiteName             string
	LogoURLs             []string
	PrimaryColor         string
	SecondaryColor       string
	OtherColors          []string
	SpecificInstructions string
	Description          string
	Budget               *float64
	BudgetText           string
	FullName             string
	Email                string
	OrderRef             string
}

// Deps are the wizard's injected collaborators.
type Deps struct {
	Store    OrderStore
	Notifier Notifier
	// Session is nil when no identity session exists; the wizard then
	// blocks all progression.
	Session *Session
	// InviteURL is shown on the bot panel and the success screen.
	InviteURL string
	Logger    *log.Logger
}

// Wizard drives a user through the order submission steps.
type Wizard struct {
	mu   sync.Mutex
	deps Deps

	draft      Draft
	step       Step
	submission SubmissionState

	touched     map[Field]bool
	fieldErrors map[Field]string
	emailError  string
	refError    string
	// refSeq invalidates in-flight uniqueness checks: only the response
	// matching the latest issued token is applied.
	refSeq uint64

	notifyWG sync.WaitGroup
	logger   *log.Logger
}

// New builds a Wizard positioned at the first step.
func New(deps Deps) *Wizard {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Wizard{
		deps: deps,
		draft: Draft{
			LogoURLs:       []string{""},
			PrimaryColor:   "#3B82F6",
			SecondaryColor: "#9CD4E3",
		},
		step:        StepOrderType,
		submission:  SubmissionEditing,
		touched:     make(map[Field]bool),
		fieldErrors: make(map[Field]string),
		logger:      logger,
	}
}

// Authenticated reports whether an identity session is attached. Without one
// the wizard shows a login prompt instead of step 1 and refuses to advance.
func (w *Wizard) Authenticated() bool {
	return w.deps.Session != nil
}

// InviteURL returns the external chat invite shown on the bot panel and the
// success screen.
func (w *Wizard) InviteURL() string {
	return w.deps.InviteURL
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Submission returns the submit lifecycle state.
func (w *Wizard) Submission() SubmissionState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submission
}

// Draft returns a copy of the accumulated form state.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.draft
	d.LogoURLs = append([]string(nil), w.draft.LogoURLs...)
	d.OtherColors = append([]string(nil), w.draft.OtherColors...)
	return d
}

// TotalSteps mirrors the progress display: branches that short-circuit
// report fewer steps.
func (w *Wizard) TotalSteps() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.draft.OrderType == OrderTypeNone, w.draft.OrderType == OrderTypeFree:
		return 1
	case w.draft.ProjectType == ProjectTypeNone, w.draft.ProjectType == ProjectTypeBot:
		return 2
	default:
		return 6
	}
}

// SelectOrderType records the tier chosen on step 1.
func (w *Wizard) SelectOrderType(t OrderType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.OrderType = t
}

// SelectProjectType records the project kind chosen on step 2.
func (w *Wizard) SelectProjectType(t ProjectType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.ProjectType = t
}

// CanProceed reports whether the current step's gate passes.
func (w *Wizard) CanProceed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canProceedStep(w.step)
}

func (w *Wizard) canProceedStep(step Step) bool {
	switch step {
	case StepOrderType:
		return w.draft.OrderType != OrderTypeNone
	case StepProjectType:
		return w.draft.ProjectType != ProjectTypeNone
	case StepSiteDetails:
		return w.draft.SiteType != "" &&
			strings.TrimSpace(w.draft.SiteName) != "" &&
			strings.TrimSpace(w.draft.Description) != ""
	case StepContact:
		return strings.TrimSpace(w.draft.FullName) != "" &&
			strings.TrimSpace(w.draft.Email) != "" &&
			emailPattern.MatchString(w.draft.Email) &&
			len(w.draft.OrderRef) == 8 &&
			refPattern.MatchString(w.draft.OrderRef) &&
			w.refError == ""
	default:
		return true
	}
}

// Next attempts to advance the wizard one step.
func (w *Wizard) Next() NextOutcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.Authenticated() {
		return NextBlocked
	}
	if w.draft.OrderType == OrderTypeFree {
		return NextRoutedToContact
	}
	if w.draft.ProjectType == ProjectTypeBot {
		// The bot panel only offers the external invite; Back is the
		// sole way out.
		return NextBlocked
	}
	if w.step >= StepRecap || !w.canProceedStep(w.step) {
		return NextBlocked
	}
	w.step++
	return NextAdvanced
}

// Back steps the wizard backward. Leaving step 2 clears the project type;
// later steps keep all selections and only move the position.
func (w *Wizard) Back() BackOutcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepOrderType, StepSuccess:
		return BackExited
	case StepProjectType:
		w.draft.ProjectType = ProjectTypeNone
	}
	w.step--
	return BackSteppedBack
}

// CheckOrderRef runs the uniqueness check for the current order reference.
// It is a no-op until the reference reaches 8 well-formed digits. Responses
// for references that were edited while the check was in flight are
// discarded.
func (w *Wizard) CheckOrderRef(ctx context.Context) error {
	w.mu.Lock()
	ref := w.draft.OrderRef
	seq := w.refSeq
	w.mu.Unlock()

	if len(ref) != 8 || !refPattern.MatchString(ref) {
		return nil
	}

	exists, err := w.deps.Store.Exists(ctx, ref)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.refSeq {
		// The reference changed under the check; a newer check owns the
		// error state now.
		return nil
	}
	if err != nil {
		w.logger.Printf("wizard: order ref check %s: %v", ref, err)
		return err
	}
	if exists {
		w.refError = msgRefTaken
	} else if w.refError == msgRefTaken {
		w.refError = ""
	}
	return nil
}

// Submit runs the final confirmation from the recap step. Validation
// failures abort silently or with an inline reference error; persistence
// failures leave the draft intact for retry. The notification is
// fire-and-forget: its failure is logged and never reverses a successful
// submission.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.step != StepRecap || w.submission == SubmissionSubmitting {
		w.mu.Unlock()
		return nil
	}
	if !w.canProceedStep(StepContact) {
		w.mu.Unlock()
		return nil
	}
	ref := w.draft.OrderRef
	if !refPattern.MatchString(ref) {
		w.refError = msgRefFormat
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	exists, err := w.deps.Store.Exists(ctx, ref)
	w.mu.Lock()
	if err != nil {
		w.submission = SubmissionFailed
		w.mu.Unlock()
		return err
	}
	if exists {
		w.refError = msgRefTaken
		w.mu.Unlock()
		return nil
	}

	w.submission = SubmissionSubmitting
	order := w.buildOrder()
	req := w.buildNotificationRequest()
	w.mu.Unlock()

	if _, err := w.deps.Store.Create(ctx, order); err != nil {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.submission = SubmissionFailed
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Another submission won the reference between the check
			// and the insert; same inline error as the pre-check.
			w.refError = msgRefTaken
		}
		return err
	}

	notifyCtx := context.WithoutCancel(ctx)
	w.notifyWG.Add(1)
	go func() {
		defer w.notifyWG.Done()
		if err := w.deps.Notifier.NotifyOrder(notifyCtx, req); err != nil {
			w.logger.Printf("wizard: order notification for %s failed: %v", req.OrderRef, err)
		}
	}()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submission = SubmissionSucceeded
	w.step = StepSuccess
	return nil
}

// WaitNotifications blocks until in-flight notification tasks finish. Hosts
// call this on shutdown.
func (w *Wizard) WaitNotifications() {
	w.notifyWG.Wait()
}

// buildOrder flattens the draft into a persistable order. Caller holds w.mu.
func (w *Wizard) buildOrder() domain.Order {
	o := domain.Order{
		OrderRef:       w.draft.OrderRef,
		OrderType:      "website",
		SiteType:       w.draft.SiteType,
		SiteName:       w.draft.SiteName,
		LogoURLs:       filterBlank(w.draft.LogoURLs),
		PrimaryColor:   w.draft.PrimaryColor,
		SecondaryColor: w.draft.SecondaryColor,
		OtherColors:    append([]string(nil), w.draft.OtherColors...),
		Description:    w.draft.Description,
		Budget:         w.draft.Budget,
		FullName:       w.draft.FullName,
		Email:          w.draft.Email,
		Status:         domain.OrderStatusPending,
	}
	if w.deps.Session != nil {
		userID := w.deps.Session.UserID
		o.UserID = &userID
		o.DiscordUsername = w.deps.Session.Username
	}
	if w.draft.SiteType == "other" && w.draft.SiteTypeOther != "" {
		other := w.draft.SiteTypeOther
		o.SiteTypeOther = &other
	}
	if w.draft.SpecificInstructions != "" {
		instr := w.draft.SpecificInstructions
		o.SpecificInstructions = &instr
	}
	if w.draft.BudgetText != "" {
		bt := w.draft.BudgetText
		o.BudgetText = &bt
	}
	return o
}

// buildNotificationRequest snapshots the draft for the notifier. Caller
// holds w.mu.
func (w *Wizard) buildNotificationRequest() NotificationRequest {
	return NotificationRequest{
		OrderRef:             w.draft.OrderRef,
		SiteType:             w.draft.SiteType,
		SiteTypeOther:        w.draft.SiteTypeOther,
		SiteName:             w.draft.SiteName,
		LogoURLs:             filterBlank(w.draft.LogoURLs),
		PrimaryColor:         w.draft.PrimaryColor,
		SecondaryColor:       w.draft.SecondaryColor,
		OtherColors:          append([]string(nil), w.draft.OtherColors...),
		SpecificInstructions: w.draft.SpecificInstructions,
		Description:          w.draft.Description,
		Budget:               w.draft.Budget,
		BudgetText:           w.draft.BudgetText,
		FullName:             w.draft.FullName,
		Email:                w.draft.Email,
	}
}

func filterBlank(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			out = append(out, u)
		}
	}
	return out
}
