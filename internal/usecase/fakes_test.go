package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. The reservation fake serializes its
// check-and-write under one mutex, mirroring the advisory-lock contract of
// the real repository.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	guestCreates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findByUsernameLocked(username), nil
}

func (f *fakeUserRepo) findByUsernameLocked(username string) *entity.User {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) {
			return u
		}
	}
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetOrCreateGuest(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing := f.findByUsernameLocked(username); existing != nil {
		return existing, nil
	}
	f.guestCreates++
	guest := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username: username,
		Email:    username + "@guest.local",
		Role:     entity.RolePlayer,
		IsGuest:  true,
		IsActive: true,
	}
	f.users[guest.ID] = guest
	return guest, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.Token.String()] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session := f.sessions[token]
	if session == nil || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session := f.sessions[token]; session != nil {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, session := range f.sessions {
		if session.UserID == userID {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

type fakeVenueRepo struct {
	mu     sync.Mutex
	venues map[uuid.UUID]*entity.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{venues: make(map[uuid.UUID]*entity.Venue)}
}

func (f *fakeVenueRepo) Create(ctx context.Context, venue *entity.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.venues[venue.ID] = venue
	return nil
}

func (f *fakeVenueRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.venues[id], nil
}

func (f *fakeVenueRepo) FindByName(ctx context.Context, name string) (*entity.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findByNameLocked(name), nil
}

func (f *fakeVenueRepo) findByNameLocked(name string) *entity.Venue {
	var partial *entity.Venue
	for _, v := range f.venues {
		if strings.EqualFold(v.Name, name) {
			return v
		}
		if strings.Contains(strings.ToLower(v.Name), strings.ToLower(name)) {
			partial = v
		}
	}
	return partial
}

func (f *fakeVenueRepo) FindAll(ctx context.Context, limit, offset int, nameFilter *string) ([]*entity.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Venue
	for _, v := range f.venues {
		if nameFilter != nil && !strings.Contains(strings.ToLower(v.Name), strings.ToLower(*nameFilter)) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVenueRepo) CountAll(ctx context.Context, nameFilter *string) (int64, error) {
	venues, _ := f.FindAll(ctx, 0, 0, nameFilter)
	return int64(len(venues)), nil
}

func (f *fakeVenueRepo) Update(ctx context.Context, venue *entity.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.venues[venue.ID] = venue
	return nil
}

func (f *fakeVenueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.venues, id)
	return nil
}

func (f *fakeVenueRepo) GetOrCreateDefault(ctx context.Context, name string, hourlyPrice float64, currency string) (*entity.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing := f.findByNameLocked(name); existing != nil {
		return existing, nil
	}
	now := time.Now()
	venue := &entity.Venue{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
		HourlyPrice:  hourlyPrice,
		Currency:     currency,
		FieldCount:   1,
		WorkingHours: entity.UniformWorkingHours("09:00", "23:00"),
	}
	f.venues[venue.ID] = venue
	return venue, nil
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []*entity.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{}
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	all, _ := f.FindByUserID(ctx, userID, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.reservations {
		if r.ID == reservation.ID {
			f.reservations[i] = reservation
			return nil
		}
	}
	return nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == id {
			r.Status = status
		}
	}
	return nil
}

func (f *fakeReservationRepo) sameSlotLocked(venueID uuid.UUID, field int, date time.Time) []*entity.Reservation {
	var out []*entity.Reservation
	for _, r := range f.reservations {
		if r.VenueID == venueID && r.FieldNumber == field && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeReservationRepo) FindByVenueFieldDate(ctx context.Context, venueID uuid.UUID, field int, date time.Time) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Reservation
	for _, r := range f.sameSlotLocked(venueID, field, date) {
		if r.Status != entity.ReservationStatusCancelled {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) CreateIfFree(ctx context.Context, reservation *entity.Reservation) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing := f.sameSlotLocked(reservation.VenueID, reservation.FieldNumber, reservation.Date)
	if conflict := entity.FindConflict(existing, reservation.StartMin, reservation.EndMin, uuid.Nil); conflict != nil {
		return conflict, nil
	}
	f.reservations = append(f.reservations, reservation)
	return nil, nil
}

func (f *fakeReservationRepo) RescheduleIfFree(ctx context.Context, id uuid.UUID, date time.Time, startMin, endMin int, status entity.ReservationStatus) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var current *entity.Reservation
	for _, r := range f.reservations {
		if r.ID == id {
			current = r
			break
		}
	}
	if current == nil {
		return nil, nil
	}
	existing := f.sameSlotLocked(current.VenueID, current.FieldNumber, date)
	if conflict := entity.FindConflict(existing, startMin, endMin, id); conflict != nil {
		return conflict, nil
	}
	current.Date = date
	current.StartMin = startMin
	current.EndMin = endMin
	current.Status = status
	return nil, nil
}

// testEnv bundles the fakes behind the service registry.
type testEnv struct {
	repo         *repository.Repository
	users        *fakeUserRepo
	sessions     *fakeSessionRepo
	venues       *fakeVenueRepo
	reservations *fakeReservationRepo
	config       *utils.Config
	service      *Service
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	venues := newFakeVenueRepo()
	reservations := newFakeReservationRepo()

	repo := &repository.Repository{
		User:        users,
		Session:     sessions,
		Venue:       venues,
		Reservation: reservations,
	}

	config := &utils.Config{}
	config.Session.ExpiryHours = 24
	config.Booking.GuestUsername = "guest"
	config.Booking.DefaultHourlyPrice = 100
	config.Booking.DefaultCurrency = "USD"

	return &testEnv{
		repo:         repo,
		users:        users,
		sessions:     sessions,
		venues:       venues,
		reservations: reservations,
		config:       config,
		service:      NewService(repo, config, zap.NewNop()),
	}
}

// addVenue seeds a venue open every day with the given window.
func (e *testEnv) addVenue(name string, hourlyPrice float64, fieldCount int, open, close string) *entity.Venue {
	now := time.Now()
	venue := &entity.Venue{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
		HourlyPrice:  hourlyPrice,
		Currency:     "USD",
		FieldCount:   fieldCount,
		WorkingHours: entity.UniformWorkingHours(open, close),
	}
	e.venues.venues[venue.ID] = venue
	return venue
}

// addUser seeds an active registered user.
func (e *testEnv) addUser(username string, role entity.UserRole) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		IsActive: true,
	}
	e.users.users[user.ID] = user
	return user
}
