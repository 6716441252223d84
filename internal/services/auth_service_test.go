package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
	"greenjourney/internal/repositories"
)

var userCols = []string{"id", "username", "email", "password_hash", "created_at"}

func newAuthService(t *testing.T) (AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return AuthService{
		UserRepo: repositories.UserRepository{DB: db},
		Secret:   []byte("test-secret"),
		TTL:      time.Hour,
	}, mock
}

func TestRegister_Validation(t *testing.T) {
	svc, mock := newAuthService(t)

	_, err := svc.Register("", "ada@example.com", "longenough")
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Register("ada", "not-an-email", "longenough")
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Register("ada", "ada@example.com", "short")
	assert.True(t, domain.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Duplicate(t *testing.T) {
	svc, mock := newAuthService(t)
	mock.ExpectQuery(`WHERE username = \? OR email = \?`).
		WithArgs("ada", "ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	_, err := svc.Register("ada", "ada@example.com", "longenough")
	require.True(t, domain.IsConflict(err))
	assert.Equal(t, msgDuplicateUser, err.Error())
}

func TestRegister_StoresHash(t *testing.T) {
	svc, mock := newAuthService(t)
	mock.ExpectQuery(`WHERE username = \? OR email = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("ada", "ada@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	u, err := svc.Register(" ada ", "ada@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)
	assert.Equal(t, "ada", u.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, mock := newAuthService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("FROM users").
		WithArgs("ada").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(5, "ada", "ada@example.com", string(hash), testNow))

	token, user, err := svc.Login("ada", "longenough")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(5), user.ID)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, "ada", claims.Username)
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	svc, mock := newAuthService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM users").WithArgs("ghost").WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectQuery("FROM users").WithArgs("ada").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(5, "ada", "ada@example.com", string(hash), testNow))

	_, _, errUnknown := svc.Login("ghost", "longenough")
	_, _, errWrong := svc.Login("ada", "wrong-password")
	require.True(t, domain.IsUnauthorized(errUnknown))
	require.True(t, domain.IsUnauthorized(errWrong))
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestParseToken_RejectsExpiredAndForeign(t *testing.T) {
	past := AuthService{Secret: []byte("test-secret"), TTL: time.Minute, Now: func() time.Time { return testNow.Add(-time.Hour) }}
	token, err := past.issue(sampleUser())
	require.NoError(t, err)

	current := AuthService{Secret: []byte("test-secret"), Now: func() time.Time { return testNow }}
	_, err = current.ParseToken(token)
	assert.True(t, domain.IsUnauthorized(err))

	other := AuthService{Secret: []byte("other-secret"), Now: func() time.Time { return testNow.Add(-time.Hour) }}
	_, err = other.ParseToken(token)
	assert.True(t, domain.IsUnauthorized(err))

	_, err = current.ParseToken("not-a-token")
	assert.True(t, domain.IsUnauthorized(err))
}

func sampleUser() models.User {
	return models.User{ID: 5, Username: "ada", Email: "ada@example.com"}
}
