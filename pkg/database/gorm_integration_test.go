package database_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormConnection(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gormDB))

	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(context.Background())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Check Account Repository", func(t *testing.T) {
		count, err := uow.AccountRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Account count: %d", count)
	})

	t.Run("Open attendance index rejects a second open row", func(t *testing.T) {
		ctx := context.Background()
		account := &entity.Account{
			Email:    "integration-" + uuid.NewString() + "@example.com",
			FullName: "Integration Test Member",
			Role:     entity.AccountRoleMember,
			Status:   entity.AccountStatusActive,
		}
		require.NoError(t, uow.AccountRepository().Create(ctx, account))
		defer uow.AccountRepository().Delete(ctx, account.Id)

		repo := uow.AttendanceRepository()
		require.NoError(t, repo.Create(ctx, &entity.Attendance{AccountId: account.Id, CheckIn: time.Now()}))
		err := repo.Create(ctx, &entity.Attendance{AccountId: account.Id, CheckIn: time.Now()})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

		open, err := repo.Count(ctx, specification.ByAccountID{AccountID: account.Id}, specification.OpenAttendance{})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), open)

		gormDB.Exec("DELETE FROM attendances WHERE account_id = ?", account.Id)
	})
}
