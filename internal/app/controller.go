// Package app holds the session state machine that turns user actions into
// profile views.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/zoneprofile/internal/adapters/platform"
	"github.com/okian/zoneprofile/internal/adapters/tokenstore"
	"github.com/okian/zoneprofile/internal/domain/model"
	"github.com/okian/zoneprofile/internal/render/charts"
	"github.com/okian/zoneprofile/internal/render/svg"
	"github.com/okian/zoneprofile/pkg/logger"
	"github.com/okian/zoneprofile/pkg/metrics"
)

const defaultErrorLogoutDelay = 5 * time.Second

// Controller drives sessions through sign-in, profile loading and logout.
type Controller struct {
	auth    platform.Authenticator
	fetcher platform.ProfileFetcher
	store   tokenstore.Storage

	logger           logger.Logger
	errorLogoutDelay time.Duration
	enhanced         bool
	afterFunc        AfterFunc

	flight singleflight.Group

	mu sync.Mutex
	// seq hands out generations. They are unique across sessions, so an
	// entry can be dropped and recreated without a late response matching.
	seq      uint64
	sessions map[string]*entry
}

// New creates a Controller. store holds one token per session.
func New(auth platform.Authenticator, fetcher platform.ProfileFetcher, store tokenstore.Storage, opts ...Option) *Controller {
	c := &Controller{
		auth:             auth,
		fetcher:          fetcher,
		store:            store,
		logger:           logger.Named("controller"),
		errorLogoutDelay: defaultErrorLogoutDelay,
		enhanced:         true,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		sessions: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start resumes a session. A stored token leads straight to a profile load;
// otherwise the login view is returned.
func (c *Controller) Start(ctx context.Context, sess Session) (Session, View, error) {
	if sess.Token == "" {
		sess.Token = c.readToken(ctx, sess.ID)
	}
	if sess.Token == "" {
		return c.snapshot(sess), View{State: StateLoggedOut}, nil
	}
	return c.LoadProfile(ctx, sess)
}

// Login exchanges credentials for a token, stores it and loads the profile.
// A rejected sign-in returns the session to the login view with a message.
func (c *Controller) Login(ctx context.Context, sess Session, identifier, password string) (Session, View, error) {
	gen, err := c.begin(sess.ID, StateAuthenticating)
	if err != nil {
		snap := c.snapshot(sess)
		return snap, View{State: snap.State}, err
	}
	sess.Generation, sess.State = gen, StateAuthenticating

	token, err := c.auth.SignIn(ctx, identifier, password)
	if err != nil {
		msg := err.Error()
		outcome := "error"
		if errors.Is(err, platform.ErrCredentialRejected) {
			msg = MessageInvalidCredentials
			outcome = "rejected"
		}
		metrics.RecordLoginAttempt(outcome)
		c.logger.Warn(ctx, "sign-in failed",
			logger.String("session", sess.ID),
			logger.String("outcome", outcome),
			logger.Error(err))

		c.mu.Lock()
		defer c.mu.Unlock()
		if err := c.advance(sess.ID, gen, StateLoggedOut); err != nil {
			snap := c.snapshotLocked(sess)
			return snap, View{State: snap.State}, err
		}
		c.release(sess.ID)
		return Session{ID: sess.ID, State: StateLoggedOut}, View{State: StateLoggedOut, Message: msg}, nil
	}

	c.mu.Lock()
	if err := c.current(sess.ID, gen); err != nil {
		snap := c.snapshotLocked(sess)
		c.mu.Unlock()
		return snap, View{State: snap.State}, err
	}
	if err := c.storage(sess.ID).Set(ctx, tokenstore.TokenKey, token); err != nil {
		_ = c.advance(sess.ID, gen, StateLoggedOut)
		c.release(sess.ID)
		c.mu.Unlock()
		metrics.RecordLoginAttempt("error")
		c.logger.Error(ctx, "store token", logger.String("session", sess.ID), logger.Error(err))
		return Session{ID: sess.ID, State: StateLoggedOut}, View{State: StateLoggedOut, Message: err.Error()}, nil
	}
	_ = c.advance(sess.ID, gen, StateLoadingProfile)
	c.mu.Unlock()

	metrics.RecordLoginAttempt("success")
	c.updateActiveSessions(ctx)
	c.logger.Info(ctx, "signed in", logger.String("session", sess.ID))

	sess.Token, sess.State = token, StateLoadingProfile
	return c.load(ctx, sess, gen)
}

// LoadProfile fetches, validates and renders the profile for the session
// token. Any failure lands in the error state with a user-facing message.
func (c *Controller) LoadProfile(ctx context.Context, sess Session) (Session, View, error) {
	if sess.Token == "" {
		sess.Token = c.readToken(ctx, sess.ID)
	}
	if sess.Token == "" {
		return sess, View{State: StateLoggedOut}, ErrNotSignedIn
	}
	gen, err := c.begin(sess.ID, StateLoadingProfile)
	if err != nil {
		snap := c.snapshot(sess)
		return snap, View{State: snap.State}, err
	}
	sess.Generation, sess.State = gen, StateLoadingProfile
	return c.load(ctx, sess, gen)
}

// Logout clears the stored token and returns to the login view. It always
// succeeds and supersedes any request still in flight.
func (c *Controller) Logout(ctx context.Context, sess Session) (Session, View, error) {
	c.mu.Lock()
	from := StateLoggedOut
	if e, ok := c.sessions[sess.ID]; ok {
		e.stopTimer()
		from = e.state
		delete(c.sessions, sess.ID)
	}
	err := c.storage(sess.ID).Delete(ctx, tokenstore.TokenKey)
	c.mu.Unlock()

	metrics.RecordStateTransition(from.String(), StateLoggedOut.String())
	c.updateActiveSessions(ctx)
	if err != nil {
		c.logger.Error(ctx, "clear token", logger.String("session", sess.ID), logger.Error(err))
	}
	c.logger.Info(ctx, "logged out", logger.String("session", sess.ID))

	return Session{ID: sess.ID, State: StateLoggedOut}, View{State: StateLoggedOut}, nil
}

// Charts renders the profile charts for a signed-in session without moving
// the session through the state machine.
func (c *Controller) Charts(ctx context.Context, sess Session) (View, error) {
	if sess.Token == "" {
		sess.Token = c.readToken(ctx, sess.ID)
	}
	if sess.Token == "" {
		return View{State: StateLoggedOut}, ErrNotSignedIn
	}
	profile, err := c.fetch(ctx, sess.Token)
	if err != nil {
		return View{State: StateError, Message: MessageLoadProfilePrefix + err.Error()}, err
	}
	return c.render(profile)
}

func (c *Controller) load(ctx context.Context, sess Session, gen uint64) (Session, View, error) {
	profile, err := c.fetch(ctx, sess.Token)
	if err != nil {
		if ctx.Err() != nil {
			// The caller went away; the token is still good and the next
			// request loads again.
			c.logger.Debug(ctx, "profile load abandoned", logger.String("session", sess.ID), logger.Error(err))
			snap := c.snapshot(sess)
			return snap, View{State: snap.State}, err
		}
		return c.fail(ctx, sess, gen, err)
	}
	view, err := c.render(profile)
	if err != nil {
		return c.fail(ctx, sess, gen, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.advance(sess.ID, gen, StateProfileShown); err != nil {
		snap := c.snapshotLocked(sess)
		return snap, View{State: snap.State}, err
	}
	sess.State = StateProfileShown
	return sess, view, nil
}

// fetch collapses concurrent loads of one token. The shared request is not
// tied to any single caller's cancellation; the client timeout bounds it and
// each caller stops waiting when its own ctx is done.
func (c *Controller) fetch(ctx context.Context, token string) (model.Profile, error) {
	start := time.Now()
	shared := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(token, func() (interface{}, error) {
		return c.fetcher.FetchProfile(shared, token)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		metrics.RecordProfileFetch("canceled", float64(time.Since(start).Milliseconds()))
		return model.Profile{}, ctx.Err()
	}

	elapsed := float64(time.Since(start).Milliseconds())
	if res.Err != nil {
		metrics.RecordProfileFetch("error", elapsed)
		return model.Profile{}, res.Err
	}
	metrics.RecordProfileFetch("success", elapsed)
	profile := res.Val.(model.Profile)
	if !res.Shared && len(profile.Warnings) > 0 {
		metrics.RecordGraphQLWarnings(len(profile.Warnings))
	}
	return profile, nil
}

// render draws both charts. Panics from the renderers are turned into errors.
func (c *Controller) render(profile model.Profile) (view View, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render charts: %v", r)
		}
	}()

	opt := charts.WithEnhanced(c.enhanced)

	skills := svg.NewCanvas(charts.SkillWidth, 0)
	charts.RenderSkills(profile.Skills, skills, opt)
	metrics.RecordChartRender("skills")

	audit := svg.NewCanvas(charts.AuditWidth, charts.AuditHeight)
	s := profile.Stats
	charts.RenderAuditRatio(s.TotalDown, s.TotalUp, s.AuditRatio, audit, opt)
	metrics.RecordChartRender("audit")

	return View{
		State:   StateProfileShown,
		Profile: &profile,
		Skills:  skills,
		Audit:   audit,
	}, nil
}

func (c *Controller) fail(ctx context.Context, sess Session, gen uint64, cause error) (Session, View, error) {
	msg := MessageLoadProfilePrefix + cause.Error()
	c.logger.Error(ctx, "load profile", logger.String("session", sess.ID), logger.Error(cause))

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.advance(sess.ID, gen, StateError); err != nil {
		snap := c.snapshotLocked(sess)
		return snap, View{State: snap.State}, err
	}
	sess.State = StateError

	view := View{State: StateError, Message: msg}
	if c.errorLogoutDelay > 0 {
		e := c.sessions[sess.ID]
		id := sess.ID
		e.timer = c.afterFunc(c.errorLogoutDelay, func() { c.expire(id, gen) })
		view.LogoutAfter = c.errorLogoutDelay
	}
	return sess, view, nil
}

// expire logs out a session still sitting in the error state it entered at
// generation gen.
func (c *Controller) expire(id string, gen uint64) {
	ctx := context.Background()

	c.mu.Lock()
	e, ok := c.sessions[id]
	if !ok || e.generation != gen || e.state != StateError {
		c.mu.Unlock()
		return
	}
	delete(c.sessions, id)
	err := c.storage(id).Delete(ctx, tokenstore.TokenKey)
	c.mu.Unlock()

	metrics.RecordStateTransition(StateError.String(), StateLoggedOut.String())
	metrics.RecordAutoLogout()
	c.updateActiveSessions(ctx)
	if err != nil {
		c.logger.Error(ctx, "clear token", logger.String("session", id), logger.Error(err))
	}
	c.logger.Info(ctx, "session logged out after error", logger.String("session", id))
}

// begin starts a new generation for the session and moves it to state to.
func (c *Controller) begin(id string, to State) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(id)
	if !CanTransition(e.state, to) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.state, to)
	}
	e.stopTimer()
	c.seq++
	e.generation = c.seq
	metrics.RecordStateTransition(e.state.String(), to.String())
	e.state = to
	return e.generation, nil
}

// advance moves the session to state to if gen is still current.
// c.mu must be held.
func (c *Controller) advance(id string, gen uint64, to State) error {
	if err := c.current(id, gen); err != nil {
		return err
	}
	e := c.sessions[id]
	if !CanTransition(e.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.state, to)
	}
	metrics.RecordStateTransition(e.state.String(), to.String())
	e.state = to
	return nil
}

// current reports ErrStaleResponse when gen has been superseded.
// c.mu must be held.
func (c *Controller) current(id string, gen uint64) error {
	if e, ok := c.sessions[id]; !ok || e.generation != gen {
		metrics.RecordStaleResponse()
		return ErrStaleResponse
	}
	return nil
}

// entry returns the bookkeeping for id, creating it on first use.
// c.mu must be held.
func (c *Controller) entry(id string) *entry {
	e, ok := c.sessions[id]
	if !ok {
		e = &entry{state: StateLoggedOut}
		c.sessions[id] = e
	}
	return e
}

// release drops the bookkeeping of a session that is back in the logged out
// state with nothing pending. c.mu must be held.
func (c *Controller) release(id string) {
	if e, ok := c.sessions[id]; ok && e.state == StateLoggedOut && e.timer == nil {
		delete(c.sessions, id)
	}
}

func (c *Controller) snapshot(sess Session) Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(sess)
}

// snapshotLocked reads the session's state without creating bookkeeping.
// c.mu must be held.
func (c *Controller) snapshotLocked(sess Session) Session {
	sess.State, sess.Generation = StateLoggedOut, 0
	if e, ok := c.sessions[sess.ID]; ok {
		sess.State, sess.Generation = e.state, e.generation
	}
	return sess
}

func (c *Controller) storage(id string) tokenstore.Storage {
	if id == "" {
		return c.store
	}
	return tokenstore.Scoped(c.store, id)
}

func (c *Controller) readToken(ctx context.Context, id string) string {
	token, err := c.storage(id).Get(ctx, tokenstore.TokenKey)
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNotFound) {
			c.logger.Error(ctx, "read token", logger.String("session", id), logger.Error(err))
		}
		return ""
	}
	return token
}

func (c *Controller) updateActiveSessions(ctx context.Context) {
	metrics.UpdateActiveSessions(c.store.Len(ctx))
}
