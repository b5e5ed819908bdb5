// internal/service/user/application/service_test.go
package application

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"foodsy/internal/pkg/sequence"
	"foodsy/internal/service/user/domain"
)

type fakeUserRepo struct {
	users     map[string]*domain.User
	emails    map[string]bool
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User), emails: make(map[string]bool)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.emails[user.Email] {
		return domain.ErrEmailTaken
	}
	r.users[user.ID] = user
	r.emails[user.Email] = true
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func newTestUserService(repo domain.UserRepository) *UserService {
	return NewUserService(repo, sequence.NewMemoryAllocator(), otel.Tracer("test"))
}

func validRegistration() *RegisterUserRequest {
	return &RegisterUserRequest{
		Username: "venkata",
		Email:    "venkata@example.com",
		Address:  "2-34 Main Road",
		City:     "Kakinada",
	}
}

func TestRegister_GeneratesUserIDFromUsername(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	view, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^VE-\d{8}-001$`), view.UserID)
	assert.Equal(t, "venkata", view.Username)
}

func TestRegister_SingleCharUsernamePadsPrefix(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	req := validRegistration()
	req.Username = "a"
	req.Email = "a@example.com"

	view, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^A0-\d{8}-001$`), view.UserID)
}

func TestRegister_SequenceAdvancesAcrossRegistrations(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Username = "ramu"
	req.Email = "ramu@example.com"
	view, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	// 不同用户名共享同一个当日计数器，前缀不同但序号递增
	assert.Regexp(t, regexp.MustCompile(`^RA-\d{8}-002$`), view.UserID)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	req := validRegistration()
	req.Email = "not-an-email"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Username = "someone"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestGet(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	created, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	view, err := svc.Get(context.Background(), created.UserID)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, view.UserID)

	_, err = svc.Get(context.Background(), "XX-19700101-001")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
