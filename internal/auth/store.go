package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/cryptox"
	"github.com/dmitrijs2005/gophtasks/internal/idgen"
	"github.com/dmitrijs2005/gophtasks/internal/kv"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
)

// Store implements register/login/logout over a kv.Storage. It keeps no
// state of its own: every call reads and writes the persisted collections.
type Store struct {
	kv      kv.Storage
	log     logging.Logger
	now     func() time.Time
	latency time.Duration
	ids     idgen.Generator
	hasher  cryptox.PasswordHasher
	tokens  TokenIssuer
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option { return func(s *Store) { s.log = l } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithLatency makes Register and Login wait d before doing any work,
// simulating a network round-trip.
func WithLatency(d time.Duration) Option { return func(s *Store) { s.latency = d } }

func WithIDGenerator(g idgen.Generator) Option { return func(s *Store) { s.ids = g } }

func WithPasswordHasher(h cryptox.PasswordHasher) Option { return func(s *Store) { s.hasher = h } }

func WithTokenIssuer(t TokenIssuer) Option { return func(s *Store) { s.tokens = t } }

func NewStore(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		kv:     storage,
		log:    logging.Nop(),
		now:    time.Now,
		hasher: cryptox.PlainHasher{},
		tokens: LegacyIssuer{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.ids == nil {
		s.ids = idgen.NewTimestamp(s.now)
	}
	return s
}

func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// users loads the user list, seeding the demo account when it is empty.
func (s *Store) users(ctx context.Context) ([]record, error) {
	var list []record
	if _, err := kv.GetJSON(ctx, s.kv, common.UsersKey, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		list = []record{demoUser}
		if err := kv.SetJSON(ctx, s.kv, common.UsersKey, list); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Register creates an account and logs it in. The email must not be taken;
// comparison is exact (case-sensitive).
func (s *Store) Register(ctx context.Context, email, password, name string) (*Session, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	list, err := s.users(ctx)
	if err != nil {
		s.log.Error(ctx, "load users failed", "error", err)
		return nil, err
	}

	for _, u := range list {
		if u.Email == email {
			s.log.Info(ctx, "register rejected: duplicate email", "email", email)
			return nil, ErrDuplicateUser
		}
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rec := record{
		ID:       s.ids.NewID(),
		Email:    email,
		Name:     name,
		Password: stored,
		Avatar:   AvatarBaseURL + name,
	}
	list = append(list, rec)

	if err := kv.SetJSON(ctx, s.kv, common.UsersKey, list); err != nil {
		s.log.Error(ctx, "save users failed", "error", err)
		return nil, err
	}
	s.log.Info(ctx, "user registered", "user_id", rec.ID, "email", email)

	return s.Login(ctx, email, password)
}

// Login issues and persists a new session, replacing any previous one.
func (s *Store) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	list, err := s.users(ctx)
	if err != nil {
		s.log.Error(ctx, "load users failed", "error", err)
		return nil, err
	}

	var found *record
	for i := range list {
		if list[i].Email != email {
			continue
		}
		ok, err := s.hasher.Verify(list[i].Password, password)
		if err != nil {
			return nil, fmt.Errorf("verify password: %w", err)
		}
		if ok {
			found = &list[i]
			break
		}
	}
	if found == nil {
		s.log.Info(ctx, "login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expires := now.Add(SessionTTL)
	user := found.user()

	token, err := s.tokens.Issue(user, now, expires)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	sess := &Session{Token: token, User: user, ExpiresAt: expires.UnixMilli()}
	if err := kv.SetJSON(ctx, s.kv, common.SessionKey, sess); err != nil {
		s.log.Error(ctx, "save session failed", "error", err)
		return nil, err
	}
	s.log.Info(ctx, "user logged in", "user_id", user.ID)

	return sess, nil
}

// Session returns the persisted session when present and valid. An expired
// session is purged. An unreadable session, or one whose token fails
// verification, reads as absent.
func (s *Store) Session(ctx context.Context) (*Session, error) {
	var sess Session
	ok, err := kv.GetJSON(ctx, s.kv, common.SessionKey, &sess)
	if isDecodeErr(err) {
		s.log.Warn(ctx, "ignoring unreadable session", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	now := s.now()
	if !sess.Valid(now) {
		s.log.Info(ctx, "session expired", "user_id", sess.User.ID)
		if err := s.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.tokens.Verify(sess.Token, now); err != nil {
		s.log.Warn(ctx, "dropping session with bad token", "user_id", sess.User.ID, "error", err)
		if err := s.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &sess, nil
}

// CurrentUser returns the logged-in user, or nil.
func (s *Store) CurrentUser(ctx context.Context) (*User, error) {
	sess, err := s.Session(ctx)
	if err != nil || sess == nil {
		return nil, err
	}
	u := sess.User
	return &u, nil
}

// Logout deletes the session whether or not one exists.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, common.SessionKey); err != nil {
		s.log.Error(ctx, "delete session failed", "error", err)
		return err
	}
	s.log.Info(ctx, "session cleared")
	return nil
}

func (s *Store) IsAuthenticated(ctx context.Context) (bool, error) {
	u, err := s.CurrentUser(ctx)
	return u != nil, err
}

// RequireUser is CurrentUser that fails with ErrNotAuthenticated instead of
// returning nil.
func (s *Store) RequireUser(ctx context.Context) (*User, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}

// UpdateAvatar changes the avatar of userID, the one field that may change
// after registration, and refreshes the session snapshot if it belongs to
// that user.
func (s *Store) UpdateAvatar(ctx context.Context, userID, avatar string) (*User, error) {
	list, err := s.users(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range list {
		if list[i].ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, common.ErrorNotFound
	}

	list[idx].Avatar = avatar
	if err := kv.SetJSON(ctx, s.kv, common.UsersKey, list); err != nil {
		return nil, err
	}

	sess, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}
	if sess != nil && sess.User.ID == userID {
		sess.User.Avatar = avatar
		if err := kv.SetJSON(ctx, s.kv, common.SessionKey, sess); err != nil {
			return nil, err
		}
	}

	u := list[idx].user()
	s.log.Info(ctx, "avatar updated", "user_id", userID)
	return &u, nil
}

func isDecodeErr(err error) bool {
	var de *kv.DecodeError
	return errors.As(err, &de)
}
