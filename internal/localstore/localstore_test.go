package localstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zad-edu/masadr2040/internal/models"
)

func newDocumentRepoMock(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlite")
	repo := NewDocumentRepository(sqlxDB, "lrcBookings", zap.NewNop())
	return repo, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestDocumentRepositorySave(t *testing.T) {
	repo, mock, cleanup := newDocumentRepoMock(t)
	defer cleanup()

	bookings := []models.Booking{
		{ID: "b1", Day: "2024-06-10", Period: 2, Teacher: "X", Subject: "Science", Lesson: "Cells", Grade: "7", Class: "7/1"},
	}
	body, err := json.Marshal(bookings)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO documents").
		WithArgs("lrcBookings", body, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), bookings))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositorySaveNilStoresEmptyArray(t *testing.T) {
	repo, mock, cleanup := newDocumentRepoMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO documents").
		WithArgs("lrcBookings", []byte("[]"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryRoundTrip(t *testing.T) {
	repo, mock, cleanup := newDocumentRepoMock(t)
	defer cleanup()

	bookings := []models.Booking{
		{ID: "b1", Day: "2024-06-10", Period: 2, Teacher: "X", Subject: "Science", Lesson: "Cells", Grade: "7", Class: "7/1"},
		{ID: "b2", Day: "2024-06-11", Period: 5, Teacher: "Y", Subject: "Arabic", Lesson: "Poetry", Grade: "8", Class: "8/2"},
	}
	body, err := json.Marshal(bookings)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT body FROM documents").
		WithArgs("lrcBookings").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(body))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bookings, loaded)
}

func TestDocumentRepositoryLoadAbsentReturnsEmpty(t *testing.T) {
	repo, mock, cleanup := newDocumentRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT body FROM documents").
		WithArgs("lrcBookings").
		WillReturnRows(sqlmock.NewRows([]string{"body"}))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestDocumentRepositoryLoadCorruptDegradesToEmpty(t *testing.T) {
	repo, mock, cleanup := newDocumentRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT body FROM documents").
		WithArgs("lrcBookings").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"not":"an array"`)))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestDocumentRepositoryEmptyCollectionRoundTrip(t *testing.T) {
	repo, mock, cleanup := newDocumentRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT body FROM documents").
		WithArgs("lrcBookings").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte("[]")))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Booking{}, loaded)
}
