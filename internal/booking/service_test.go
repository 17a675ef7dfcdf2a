package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/model"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/store"
)

// fakeStore is an in-memory Store for exercising the admission rules
// without a database.
type fakeStore struct {
	rooms        map[string]*model.Room
	users        map[string]*model.User
	reservations map[string]*model.Reservation
	createErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:        map[string]*model.Room{},
		users:        map[string]*model.User{},
		reservations: map[string]*model.Reservation{},
	}
}

func (f *fakeStore) RoomByID(_ context.Context, id string) (*model.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) ActiveReservationsByRoom(_ context.Context, roomID string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.RoomID == roomID && r.Status != model.StatusCancelled {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateReservation(_ context.Context, r *model.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	if !r.End.After(r.Start) {
		return store.ErrInvalidWindow
	}
	r.CreatedAt = time.Now()
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeStore) ReservationByID(_ context.Context, id string) (*model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) SetReservationStatus(_ context.Context, id, status string) error {
	r, ok := f.reservations[id]
	if !ok {
		return store.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeStore) ReservationDetail(_ context.Context, id string) (*model.ReservationDetail, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return f.detail(r), nil
}

func (f *fakeStore) ListReservationDetails(_ context.Context, userID string) ([]model.ReservationDetail, error) {
	var out []model.ReservationDetail
	for _, r := range f.reservations {
		if userID == "" || r.UserID == userID {
			out = append(out, *f.detail(r))
		}
	}
	return out, nil
}

func (f *fakeStore) detail(r *model.Reservation) *model.ReservationDetail {
	d := &model.ReservationDetail{
		ID:        r.ID,
		User:      model.UserSummary{ID: r.UserID},
		Room:      model.RoomSummary{ID: r.RoomID},
		Start:     r.Start,
		End:       r.End,
		Status:    r.Status,
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
	}
	if u, ok := f.users[r.UserID]; ok {
		d.User.Name, d.User.Email = u.Name, u.Email
	}
	if rm, ok := f.rooms[r.RoomID]; ok {
		d.Room.Name, d.Room.Capacity, d.Room.Location = rm.Name, rm.Capacity, rm.Location
	}
	return d
}

func (f *fakeStore) addRoom(available bool) string {
	id := uuid.New().String()
	f.rooms[id] = &model.Room{
		ID: id, Name: "Sala " + id[:4], Capacity: 8,
		Location: "Piso 2", Available: available,
	}
	return id
}

func (f *fakeStore) addUser() string {
	id := uuid.New().String()
	f.users[id] = &model.User{ID: id, Name: "Test", Email: id[:8] + "@test.com", Role: model.RoleUser}
	return id
}

func hours(n int) time.Time {
	return time.Now().Add(time.Duration(n) * time.Hour).Truncate(time.Second)
}

func TestRequestBooking(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	d, err := svc.RequestBooking(context.Background(), roomID, hours(10), hours(12), userID, "estudio")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, d.Status)
	assert.Equal(t, userID, d.User.ID)
	assert.Equal(t, roomID, d.Room.ID)
	assert.NotEmpty(t, d.Room.Name)
	assert.Equal(t, "estudio", d.Reason)
}

func TestRequestBookingRoomNotFound(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	userID := fs.addUser()

	_, err := svc.RequestBooking(context.Background(), uuid.New().String(), hours(1), hours(2), userID, "")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRequestBookingRoomUnavailable(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(false)
	userID := fs.addUser()

	// the availability flag blocks the room regardless of schedule
	_, err := svc.RequestBooking(context.Background(), roomID, hours(1), hours(2), userID, "")
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestRequestBookingPastStart(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	_, err := svc.RequestBooking(context.Background(), roomID, hours(-24), hours(-23), userID, "")
	assert.ErrorIs(t, err, ErrPastStart)
}

func TestRequestBookingInvalidWindow(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	// zero-length window
	_, err := svc.RequestBooking(context.Background(), roomID, hours(2), hours(2), userID, "")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	// inverted window
	_, err = svc.RequestBooking(context.Background(), roomID, hours(3), hours(2), userID, "")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestRequestBookingConflict(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	_, err := svc.RequestBooking(context.Background(), roomID, hours(10), hours(12), userID, "")
	require.NoError(t, err)

	// overlapping window loses, and the conflict set is reported
	_, err = svc.RequestBooking(context.Background(), roomID, hours(11), hours(13), userID, "")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Len(t, conflict.Conflicts, 1)

	// back-to-back windows are admitted on both sides
	_, err = svc.RequestBooking(context.Background(), roomID, hours(12), hours(13), userID, "")
	assert.NoError(t, err)
	_, err = svc.RequestBooking(context.Background(), roomID, hours(9), hours(10), userID, "")
	assert.NoError(t, err)
}

func TestRequestBookingLostRace(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	// the database gate rejects the insert even though the check passed
	fs.createErr = store.ErrConflict
	_, err := svc.RequestBooking(context.Background(), roomID, hours(1), hours(2), userID, "")
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestRequestBookingCheckOrder(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(false)
	userID := fs.addUser()

	// unavailable room wins over the bad window: first failure reported
	_, err := svc.RequestBooking(context.Background(), roomID, hours(2), hours(1), userID, "")
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestCancelBooking(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	d, err := svc.RequestBooking(context.Background(), roomID, hours(10), hours(12), userID, "")
	require.NoError(t, err)

	r, err := svc.CancelBooking(context.Background(), d.ID, userID, model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, r.Status)

	// cancellation frees the window
	_, err = svc.RequestBooking(context.Background(), roomID, hours(10), hours(12), userID, "")
	assert.NoError(t, err)
}

func TestCancelBookingIdempotent(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	d, _ := svc.RequestBooking(context.Background(), roomID, hours(10), hours(12), userID, "")

	_, err := svc.CancelBooking(context.Background(), d.ID, userID, model.RoleUser)
	require.NoError(t, err)
	r, err := svc.CancelBooking(context.Background(), d.ID, userID, model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, r.Status)
}

func TestCancelBookingOwnership(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	owner := fs.addUser()
	other := fs.addUser()

	d, _ := svc.RequestBooking(context.Background(), roomID, hours(10), hours(12), owner, "")

	_, err := svc.CancelBooking(context.Background(), d.ID, other, model.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	// admin role bypasses ownership
	r, err := svc.CancelBooking(context.Background(), d.ID, other, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, r.Status)
}

func TestCancelBookingNotFound(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	_, err := svc.CancelBooking(context.Background(), uuid.New().String(), fs.addUser(), model.RoleUser)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCheckAvailability(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	// empty schedule: available for any well-formed window
	av, err := svc.CheckAvailability(context.Background(), roomID, hours(1), hours(2))
	require.NoError(t, err)
	assert.True(t, av.Available)
	assert.Empty(t, av.Conflicts)

	_, err = svc.RequestBooking(context.Background(), roomID, hours(10), hours(12), userID, "")
	require.NoError(t, err)

	av, err = svc.CheckAvailability(context.Background(), roomID, hours(11), hours(13))
	require.NoError(t, err)
	assert.False(t, av.Available)
	assert.Len(t, av.Conflicts, 1)

	// read-only: nothing was persisted by the checks
	active, _ := fs.ActiveReservationsByRoom(context.Background(), roomID)
	assert.Len(t, active, 1)
}

func TestCheckAvailabilityFlagOff(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(false)

	// no conflicts, but the room flag alone makes it unavailable
	av, err := svc.CheckAvailability(context.Background(), roomID, hours(1), hours(2))
	require.NoError(t, err)
	assert.False(t, av.Available)
	assert.Empty(t, av.Conflicts)
}

func TestGetBookingOwnership(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	owner := fs.addUser()
	other := fs.addUser()

	d, _ := svc.RequestBooking(context.Background(), roomID, hours(10), hours(12), owner, "")

	_, err := svc.GetBooking(context.Background(), d.ID, other, model.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.GetBooking(context.Background(), d.ID, other, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
}

func TestListBookings(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	u1 := fs.addUser()
	u2 := fs.addUser()

	_, err := svc.RequestBooking(context.Background(), roomID, hours(10), hours(11), u1, "")
	require.NoError(t, err)
	_, err = svc.RequestBooking(context.Background(), roomID, hours(11), hours(12), u2, "")
	require.NoError(t, err)

	own, err := svc.ListBookings(context.Background(), u1, model.RoleUser)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.ListBookings(context.Background(), u1, model.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNoConfirmedOverlapInvariant(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	// hammer the same room with a mix of windows, then verify the invariant
	windows := [][2]int{{1, 3}, {2, 4}, {3, 5}, {1, 2}, {4, 6}, {5, 7}, {2, 3}}
	for _, w := range windows {
		_, _ = svc.RequestBooking(context.Background(), roomID, hours(w[0]), hours(w[1]), userID, "")
	}

	active, err := fs.ActiveReservationsByRoom(context.Background(), roomID)
	require.NoError(t, err)
	for i := range active {
		for j := range active {
			if i == j {
				continue
			}
			a, b := active[i], active[j]
			if a.Start.Before(b.End) && a.End.After(b.Start) {
				t.Fatalf("confirmed reservations overlap: [%v,%v) vs [%v,%v)", a.Start, a.End, b.Start, b.End)
			}
		}
	}
}

func TestStorageFaultPropagates(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	roomID := fs.addRoom(true)
	userID := fs.addUser()

	boom := errors.New("connection reset")
	fs.createErr = boom
	_, err := svc.RequestBooking(context.Background(), roomID, hours(1), hours(2), userID, "")
	assert.ErrorIs(t, err, boom)
}
