package backup

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)
	return NewService(db, zap.NewNop().Sugar()), mock
}

func TestExportUserQueriesAndStripsCredentials(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "app_user" WHERE id = \$1`).
		WithArgs("u1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow("u1", "driver@example.com", "hash"))
	mock.ExpectQuery(`SELECT \* FROM "drive_log" WHERE user_id = \$1 ORDER BY log_date`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "maintenance_item" WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "maintenance_record" WHERE user_id = \$1 ORDER BY service_date`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_name"}).
			AddRow("r1", "u1", "Oil change"))
	mock.ExpectQuery(`SELECT \* FROM "appointment" WHERE user_id = \$1 ORDER BY scheduled_at`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "config_entry" WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectQuery(`SELECT \* FROM "fixed_cost" WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	out, err := svc.ExportUser(context.Background(), "u1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "u1", out.Profile.ID)
	assert.Empty(t, out.Profile.PasswordHash)
	require.Len(t, out.MaintenanceRecords, 1)
	assert.Equal(t, "Oil change", out.MaintenanceRecords[0].ItemName)
}
