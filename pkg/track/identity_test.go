package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIdentityReconciler_TransitionsOnly(t *testing.T) {
	rec := &recorder{}
	r := NewIdentityReconciler(rec)

	userA := &User{ID: "userA", Email: "a@example.com"}

	// [nil, userA, userA, userA, nil] -> identify(userA), reset()
	r.Observe(nil)
	r.Observe(userA)
	r.Observe(userA)
	r.Observe(userA)
	r.Observe(nil)

	require.Equal(t, []string{"identify(userA)", "reset()"}, rec.recorded())
}

func TestIdentityReconciler_UserSwitch(t *testing.T) {
	rec := &recorder{}
	r := NewIdentityReconciler(rec)

	r.Observe(&User{ID: "userA"})
	r.Observe(&User{ID: "userB"})

	require.Equal(t, []string{"identify(userA)", "identify(userB)"}, rec.recorded())
}

func TestIdentityReconciler_RepeatedSignOut(t *testing.T) {
	rec := &recorder{}
	r := NewIdentityReconciler(rec)

	r.Observe(nil)
	r.Observe(nil)

	require.Empty(t, rec.recorded(), "reset must not fire without a prior identify")
}

func TestIdentityReconciler_SignInAgainAfterSignOut(t *testing.T) {
	rec := &recorder{}
	r := NewIdentityReconciler(rec)

	userA := &User{ID: "userA"}
	r.Observe(userA)
	r.Observe(nil)
	r.Observe(userA)

	require.Equal(t, []string{"identify(userA)", "reset()", "identify(userA)"}, rec.recorded())
}

func TestIdentityReconciler_DisabledIsNoop(t *testing.T) {
	r := NewIdentityReconciler(nil)

	// Must not panic.
	r.Observe(&User{ID: "userA"})
	r.Observe(nil)
}

func TestUserTraits(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	u := User{ID: "u1", Email: "a@example.com", CreatedAt: created}

	traits := u.Traits()
	require.Equal(t, "a@example.com", traits["email"])
	require.Equal(t, "2024-03-01T12:00:00Z", traits["created_at"])

	// Zero CreatedAt is omitted rather than formatted.
	_, ok := User{ID: "u2"}.Traits()["created_at"]
	require.False(t, ok)
}
