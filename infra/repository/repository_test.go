package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() }) //nolint:errcheck
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestAccountRepository_Get(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	rows := sqlmock.NewRows([]string{"id", "balance", "account_number"}).
		AddRow(1, "100.0000", "ACC-1")
	mock.ExpectQuery(`SELECT \* FROM "account" WHERE id = \$1 ORDER BY "account"\."id" LIMIT \$2`).
		WithArgs(1, 1).WillReturnRows(rows)

	acc, err := repo.Get(context.Background(), 1)
	require.NoError(err)
	require.NotNil(acc)
	assert.Equal(int64(1), acc.ID)
	assert.Equal("ACC-1", acc.AccountNumber)
	assert.True(acc.Balance.Equal(decimal.NewFromInt(100)))

	mock.ExpectQuery(`SELECT \* FROM "account" WHERE id = \$1`).
		WithArgs(2, 1).WillReturnError(gorm.ErrRecordNotFound)
	acc, err = repo.Get(context.Background(), 2)
	require.ErrorIs(err, domain.ErrAccountNotFound)
	assert.Nil(acc)

	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_Get_EmptyResult(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "account"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "account_number"}))

	_, err := repo.Get(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.EqualError(t, err, "Account not found")
}

func TestAccountRepository_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	rows := sqlmock.NewRows([]string{"id", "balance", "account_number"}).
		AddRow(1, "10", "ACC-1")
	mock.ExpectQuery(`SELECT \* FROM "account" WHERE id = \$1 ORDER BY "account"\."id" LIMIT \$2 FOR UPDATE`).
		WithArgs(1, 1).WillReturnRows(rows)

	acc, err := repo.GetForUpdate(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(10)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}
	acc := account.New().WithAccountNumber("ACC-9").WithBalance(decimal.NewFromInt(5)).Build()

	mock.ExpectQuery(`INSERT INTO "account" (.+) VALUES (.+) RETURNING (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	require.NoError(t, repo.Create(context.Background(), acc))
	assert.Equal(t, int64(9), acc.ID)

	mock.ExpectQuery(`INSERT INTO "account" (.+) VALUES (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)
	err := repo.Create(context.Background(), account.New().Build())
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}
	acc := account.New().WithID(3).WithBalance(decimal.NewFromInt(75)).Build()

	mock.ExpectExec(`UPDATE "account" SET "balance"=\$1 WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), acc))

	mock.ExpectExec(`UPDATE "account"`).WillReturnError(errors.New("update error"))
	require.EqualError(t, repo.Update(context.Background(), acc), "update error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}
	tx := account.NewTransactionFromData(0, 1, time.Now(), decimal.NewFromInt(50),
		decimal.NewFromInt(150), account.TypeDeposit)

	mock.ExpectQuery(`INSERT INTO "transaction" \("date","amount","balance","transaction_type","account_id"\) VALUES (.+) RETURNING "id"`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "DEPOSIT", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	require.NoError(t, repo.Create(context.Background(), tx))
	assert.Equal(t, int64(11), tx.ID)

	mock.ExpectQuery(`INSERT INTO "transaction"`).WillReturnError(errors.New("create error"))
	require.Error(t, repo.Create(context.Background(), tx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListByAccount(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}
	at := time.Date(2025, 1, 5, 15, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "date", "amount", "balance", "transaction_type", "account_id"}).
		AddRow(1, at, "100", "100", "DEPOSIT", 1).
		AddRow(2, at, "-50", "50", "WITHDRAW", 1)
	mock.ExpectQuery(`SELECT \* FROM "transaction" WHERE account_id = \$1 ORDER BY id ASC`).
		WithArgs(1).WillReturnRows(rows)

	txs, err := repo.ListByAccount(context.Background(), 1)
	require.NoError(err)
	require.Len(txs, 2)
	assert.Equal(int64(1), txs[0].ID)
	assert.Equal(account.TypeDeposit, txs[0].Type)
	assert.True(txs[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(account.TypeWithdraw, txs[1].Type)
	assert.True(txs[1].Amount.Equal(decimal.NewFromInt(-50)))
	assert.True(txs[1].Balance.Equal(decimal.NewFromInt(50)))

	mock.ExpectQuery(`SELECT \* FROM "transaction"`).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	txs, err = repo.ListByAccount(context.Background(), 2)
	require.NoError(err)
	assert.NotNil(txs)
	assert.Empty(txs)
	require.NoError(mock.ExpectationsWereMet())
}
