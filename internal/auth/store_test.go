package auth

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/cryptox"
	"github.com/dmitrijs2005/gophtasks/internal/kv"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T, opts ...Option) (*Store, *kv.Memory, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.UnixMilli(1_700_000_000_000)}
	mem := kv.NewMemory()
	base := []Option{WithClock(clock.Now)}
	return NewStore(mem, append(base, opts...)...), mem, clock
}

func storedUsers(t *testing.T, mem *kv.Memory) []record {
	t.Helper()
	var out []record
	_, err := kv.GetJSON(context.Background(), mem, common.UsersKey, &out)
	require.NoError(t, err)
	return out
}

func TestLogin_DemoUserSeeded(t *testing.T) {
	s, mem, clock := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, User{ID: "1", Email: "demo@example.com", Name: "Demo User"}, sess.User)
	assert.Equal(t, clock.Now().Add(24*time.Hour).UnixMilli(), sess.ExpiresAt)
	assert.NotEmpty(t, sess.Token)

	assert.Equal(t, []record{demoUser}, storedUsers(t, mem))

	raw, err := mem.Get(ctx, common.SessionKey)
	require.NoError(t, err)
	var persisted map[string]any
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.EqualValues(t, sess.ExpiresAt, persisted["expiresAt"])
	assert.NotContains(t, persisted["user"], "password")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	cases := []struct{ email, password string }{
		{"demo@example.com", "wrong"},
		{"DEMO@example.com", "password123"},
		{"nobody@example.com", "password123"},
	}
	for _, c := range cases {
		_, err := s.Login(ctx, c.email, c.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials, c.email)
	}

	v, _ := mem.Get(ctx, common.SessionKey)
	assert.Nil(t, v, "failed login must not persist a session")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "demo@example.com", "other", "Someone")
	require.ErrorIs(t, err, ErrDuplicateUser)

	assert.Len(t, storedUsers(t, mem), 1, "user list unchanged")
	v, _ := mem.Get(ctx, common.SessionKey)
	assert.Nil(t, v)
}

func TestRegister_ThenLogin(t *testing.T) {
	s, mem, clock := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Register(ctx, "a@b.c", "pw", "Ann")
	require.NoError(t, err)

	want := User{
		ID:     "1700000000000",
		Email:  "a@b.c",
		Name:   "Ann",
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Ann",
	}
	if diff := cmp.Diff(want, sess.User); diff != "" {
		t.Fatalf("session user mismatch (-want +got):\n%s", diff)
	}

	users := storedUsers(t, mem)
	require.Len(t, users, 2)
	assert.Equal(t, "pw", users[1].Password, "plain mode stores the password as given")

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, &want, cur)

	clock.Advance(time.Minute)
	again, err := s.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, want, again.User)
	assert.NotEqual(t, sess.Token, again.Token)
}

func TestRegister_IDsDistinctWithinMillisecond(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	a, err := s.Register(ctx, "a@x", "pw", "A")
	require.NoError(t, err)
	b, err := s.Register(ctx, "b@x", "pw", "B")
	require.NoError(t, err)
	assert.NotEqual(t, a.User.ID, b.User.ID)
}

func TestSession_ExpiredIsPurged(t *testing.T) {
	s, mem, clock := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)

	clock.Advance(SessionTTL - time.Millisecond)
	ok, err := s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Advance(time.Millisecond)
	u, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u, "a session is invalid once now reaches expiresAt")

	v, _ := mem.Get(ctx, common.SessionKey)
	assert.Nil(t, v, "expired session is deleted")
}

func TestSession_CorruptReadsAsAbsent(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, common.SessionKey, []byte("{garbage")))

	u, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	_, err = s.RequireUser(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSession_OpaqueTokenIsAuthenticated(t *testing.T) {
	s, mem, clock := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.SetJSON(ctx, mem, common.SessionKey, Session{
		Token:     "opaque-session-token",
		User:      User{ID: "1", Email: "demo@example.com", Name: "Demo User"},
		ExpiresAt: clock.Now().Add(time.Hour).UnixMilli(),
	}))

	u, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "demo@example.com", u.Email)

	ok, err := s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSession_RejectedTokenIsPurged(t *testing.T) {
	s, mem, clock := newTestStore(t, WithTokenIssuer(JWTIssuer{Secret: []byte("k")}))
	ctx := context.Background()

	require.NoError(t, kv.SetJSON(ctx, mem, common.SessionKey, Session{
		Token:     "not.a.jwt",
		User:      User{ID: "1"},
		ExpiresAt: clock.Now().Add(time.Hour).UnixMilli(),
	}))

	ok, err := s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	v, err := mem.Get(ctx, common.SessionKey)
	require.NoError(t, err)
	assert.Nil(t, v, "rejected session must be deleted")
}

func TestLogout(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Logout(ctx), "logout without a session is fine")

	_, err := s.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	v, _ := mem.Get(ctx, common.SessionKey)
	assert.Nil(t, v)
	ok, err := s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLatency_HonoursContext(t *testing.T) {
	s, _, _ := newTestStore(t, WithLatency(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Login(ctx, "demo@example.com", "password123")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Register(ctx, "x@y", "pw", "X")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLatency_Waits(t *testing.T) {
	s := NewStore(kv.NewMemory(), WithLatency(20*time.Millisecond))

	start := time.Now()
	_, err := s.Login(context.Background(), "demo@example.com", "password123")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestHashedPasswords(t *testing.T) {
	s, mem, _ := newTestStore(t, WithPasswordHasher(cryptox.BcryptHasher{Cost: 4}))
	ctx := context.Background()

	_, err := s.Register(ctx, "a@b.c", "secret", "Ann")
	require.NoError(t, err)

	users := storedUsers(t, mem)
	require.Len(t, users, 2)
	assert.NotEqual(t, "secret", users[1].Password)
	assert.True(t, strings.HasPrefix(users[1].Password, "$2"))

	_, err = s.Login(ctx, "a@b.c", "secret")
	require.NoError(t, err)

	_, err = s.Login(ctx, "a@b.c", "Secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestJWTSessions(t *testing.T) {
	s, mem, clock := newTestStore(t, WithTokenIssuer(JWTIssuer{Secret: []byte("k")}))
	ctx := context.Background()

	sess, err := s.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)

	claims, err := JWTIssuer{Secret: []byte("k")}.Parse(sess.Token, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)

	tampered := *sess
	tampered.Token = sess.Token + "x"
	require.NoError(t, kv.SetJSON(ctx, mem, common.SessionKey, tampered))

	u, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateAvatar(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)

	u, err := s.UpdateAvatar(ctx, "1", "https://example.com/me.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me.png", u.Avatar)

	assert.Equal(t, "https://example.com/me.png", storedUsers(t, mem)[0].Avatar)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me.png", cur.Avatar, "session snapshot refreshed")

	_, err = s.UpdateAvatar(ctx, "404", "x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUsers_CorruptListIsAnError(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, common.UsersKey, []byte("nope")))

	_, err := s.Login(ctx, "demo@example.com", "password123")
	var de *kv.DecodeError
	assert.ErrorAs(t, err, &de)
}
