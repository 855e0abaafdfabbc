package role

import (
	"context"
	"testing"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/profile"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const internalDomain = "autorabit.com"

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := f.GetByEmail(ctx, email)
	return u.ID != "", nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	u, _ := f.GetByEmail(ctx, email)
	return u, nil
}

type fakeProfileRepo struct {
	profiles map[string]profile.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	f.profiles[p.UserID] = p
	return p, nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProfileRepo) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*profile.Profile, error) {
	for _, p := range f.profiles {
		if p.EmployeeNumber == employeeNumber {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	f.profiles[p.UserID] = p
	return p, nil
}

func (f *fakeProfileRepo) EmployeeNumberTakenByOther(ctx context.Context, employeeNumber string, userID string) (bool, error) {
	for _, p := range f.profiles {
		if p.EmployeeNumber == employeeNumber && p.UserID != userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeAssignmentRepo struct {
	assignments map[string]user.RoleAssignment
	upserts     int
}

func (f *fakeAssignmentRepo) Get(ctx context.Context, userID string) (*user.RoleAssignment, error) {
	a, ok := f.assignments[userID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAssignmentRepo) Upsert(ctx context.Context, userID string, role user.Role) (user.RoleAssignment, error) {
	f.upserts++
	a := user.RoleAssignment{UserID: userID, Role: role}
	f.assignments[userID] = a
	return a, nil
}

func newTestResolver(users map[string]user.User, profiles map[string]profile.Profile, assignments map[string]user.RoleAssignment) (user.RoleResolver, *fakeAssignmentRepo) {
	assignmentRepo := &fakeAssignmentRepo{assignments: assignments}
	resolver := NewResolver(
		&fakeUserRepo{users: users},
		&fakeProfileRepo{profiles: profiles},
		assignmentRepo,
		internalDomain,
	)
	return resolver, assignmentRepo
}

func TestResolver_PersistedAssignmentShortCircuits(t *testing.T) {
	t.Parallel()

	// Email would compute employee; the stored assignment wins.
	resolver, assignmentRepo := newTestResolver(
		map[string]user.User{"u1": {ID: "u1", Email: "vendor@gmail.com"}},
		map[string]profile.Profile{},
		map[string]user.RoleAssignment{"u1": {UserID: "u1", Role: user.RoleViewOnlyAdmin}},
	)

	role, err := resolver.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, user.RoleViewOnlyAdmin, role)
	assert.Zero(t, assignmentRepo.upserts)
}

func TestResolver_InternalEmailBecomesAdmin(t *testing.T) {
	t.Parallel()

	resolver, assignmentRepo := newTestResolver(
		map[string]user.User{"u1": {ID: "u1", Email: "ramesh@autorabit.com"}},
		map[string]profile.Profile{},
		map[string]user.RoleAssignment{},
	)

	role, err := resolver.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAutorabitAdmin, role)
	assert.Equal(t, 1, assignmentRepo.upserts)

	// Second resolution hits the persisted row.
	role, err = resolver.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAutorabitAdmin, role)
	assert.Equal(t, 1, assignmentRepo.upserts)
}

func TestResolver_HRPatternsBecomeHRAdmin(t *testing.T) {
	t.Parallel()

	for _, email := range []string{
		"hr@autorabit.com",
		"hr.team@autorabit.com",
		"human.resources@autorabit.com",
		"HR@autorabit.com",
	} {
		resolver, _ := newTestResolver(
			map[string]user.User{"u1": {ID: "u1", Email: email}},
			map[string]profile.Profile{},
			map[string]user.RoleAssignment{},
		)

		role, err := resolver.Resolve(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, user.RoleHRAdmin, role, "email %s", email)
	}
}

func TestResolver_ExternalEmailStaysEmployee(t *testing.T) {
	t.Parallel()

	resolver, assignmentRepo := newTestResolver(
		map[string]user.User{"u1": {ID: "u1", Email: "vendor@curries-n-more.in"}},
		map[string]profile.Profile{},
		map[string]user.RoleAssignment{},
	)

	role, err := resolver.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, role)

	// External users never get a persisted row; a later explicit assignment
	// can still promote them.
	assert.Zero(t, assignmentRepo.upserts)
}

func TestResolver_ProfileEmailPreferredOverAuthEmail(t *testing.T) {
	t.Parallel()

	resolver, _ := newTestResolver(
		map[string]user.User{"u1": {ID: "u1", Email: "personal@gmail.com"}},
		map[string]profile.Profile{"u1": {UserID: "u1", CompanyEmail: "sita@autorabit.com"}},
		map[string]user.RoleAssignment{},
	)

	role, err := resolver.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAutorabitAdmin, role)
}
