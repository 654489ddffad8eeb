package service

import (
	"context"
	"testing"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "user_service_test_secret"

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewUserService(repository.NewUserRepository(db), testJWTSecret), db
}

func validSignup() SignupInput {
	return SignupInput{
		Username: "new_user",
		Email:    "new_user@example.com",
		Password: "SuperSecret123!",
		FullName: "New User",
	}
}

func TestSignupIssuesVerifiableToken(t *testing.T) {
	svc, _ := newUserService(t)

	resp, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.RoleUser, resp.User.Role)

	claims, err := middleware.ParseSession(testJWTSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	dup := validSignup()
	dup.Username = "other_name"
	_, err = svc.Signup(ctx, dup)
	assertAppErrorCode(t, err, models.CodeConflict)
}

func TestSignupRejectsWeakInput(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*SignupInput)
	}{
		{"short password", func(in *SignupInput) { in.Password = "Short1!" }},
		{"no special char", func(in *SignupInput) { in.Password = "SuperSecret12345" }},
		{"bad email", func(in *SignupInput) { in.Email = "not-an-email" }},
		{"bad username", func(in *SignupInput) { in.Username = "_leading" }},
		{"empty username", func(in *SignupInput) { in.Username = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSignup()
			tt.mutate(&in)
			_, err := svc.Signup(ctx, in)
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	_, errMissing := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "SuperSecret123!"})
	_, errWrongPw := svc.Login(ctx, LoginInput{Email: "new_user@example.com", Password: "WrongSecret123!"})

	assertAppErrorCode(t, errMissing, models.CodeUnauthorized)
	assertAppErrorCode(t, errWrongPw, models.CodeUnauthorized)
	assert.Equal(t, errMissing.Error(), errWrongPw.Error())
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginInput{Email: "new_user@example.com", Password: "SuperSecret123!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "new_user", resp.User.Username)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	user := createTestUser(t, db, "profiled", models.RoleUser)

	name := "Full Name"
	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{ActorID: user.ID, FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Full Name", updated.FullName)

	avatar := "https://cdn.example.com/a.png"
	updated, err = svc.UpdateProfile(ctx, UpdateProfileInput{ActorID: user.ID, AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Full Name", updated.FullName)
	assert.Equal(t, avatar, updated.AvatarURL)
}

func TestUpdateRole(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := createTestUser(t, db, "root", models.RoleAdmin)
	member := createTestUser(t, db, "member", models.RoleUser)

	updated, err := svc.UpdateRole(ctx, UpdateRoleInput{ActorID: admin.ID, UserID: member.ID, Role: models.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, updated.Role)

	_, err = svc.UpdateRole(ctx, UpdateRoleInput{ActorID: admin.ID, UserID: member.ID, Role: "superuser"})
	assertAppErrorCode(t, err, models.CodeValidation)

	// self-demotion is blocked
	_, err = svc.UpdateRole(ctx, UpdateRoleInput{ActorID: admin.ID, UserID: admin.ID, Role: models.RoleUser})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.UpdateRole(ctx, UpdateRoleInput{ActorID: admin.ID, UserID: 9999, Role: models.RoleUser})
	assertAppErrorCode(t, err, models.CodeNotFound)
}
