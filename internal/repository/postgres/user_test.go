package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun-dev21/teamforge/internal/models"
)

var userCols = []string{"id", "email", "username", "password_hash", "avatar", "created_at", "updated_at"}

func TestUserStore_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ana@example.com", "ana42", "$2a$09$hash", "https://robohash.org/ana42").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(userID, "ana@example.com", "ana42", "$2a$09$hash", "https://robohash.org/ana42", now, now))

	store := NewUserStore(mock)
	created, err := store.Create(context.Background(), &models.User{
		Email:        "ana@example.com",
		Username:     "ana42",
		PasswordHash: "$2a$09$hash",
		Avatar:       "https://robohash.org/ana42",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_GetByEmail(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantNil   bool
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE email`).
					WithArgs("ana@example.com").
					WillReturnRows(pgxmock.NewRows(userCols).
						AddRow(userID, "ana@example.com", "ana42", "hash", "", now, now))
			},
		},
		{
			name: "absent is nil without error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE email`).
					WithArgs("ana@example.com").
					WillReturnRows(pgxmock.NewRows(userCols))
			},
			wantNil: true,
		},
		{
			name: "database error propagates",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE email`).
					WithArgs("ana@example.com").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			store := NewUserStore(mock)
			u, err := store.GetByEmail(context.Background(), "ana@example.com")

			if tt.wantErr {
				require.Error(t, err)
			} else if tt.wantNil {
				require.NoError(t, err)
				assert.Nil(t, u)
			} else {
				require.NoError(t, err)
				require.NotNil(t, u)
				assert.Equal(t, userID, u.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserStore_GetByUsername_Absent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`WHERE username`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(userCols))

	store := NewUserStore(mock)
	u, err := store.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_UpdatePassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()

	mock.ExpectExec(`UPDATE users`).
		WithArgs(userID, "$2a$09$newhash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	store := NewUserStore(mock)
	require.NoError(t, store.UpdatePassword(context.Background(), userID, "$2a$09$newhash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
