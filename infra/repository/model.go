package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Numeric is a decimal column declared numeric(19,4). SQLite would coerce
// that declaration to a REAL, so there it is stored as text to round-trip
// exactly.
type Numeric struct {
	decimal.Decimal
}

// NewNumeric wraps d for persistence.
func NewNumeric(d decimal.Decimal) Numeric {
	return Numeric{Decimal: d}
}

// GormDBDataType implements schema.GormDBDataTypeInterface.
func (Numeric) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "numeric(19,4)"
}

// Account represents an account record in the database.
type Account struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	Balance       Numeric         `gorm:"type:numeric(19,4);not null"`
	AccountNumber string          `gorm:"type:varchar(64);column:account_number"`
	Transactions  []Transaction   `gorm:"foreignKey:AccountID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "account"
}

// Transaction represents a persisted ledger entry.
type Transaction struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	Date            time.Time       `gorm:"not null"`
	Amount          Numeric         `gorm:"type:numeric(19,4);not null"`
	Balance         Numeric         `gorm:"type:numeric(19,4);not null"`
	TransactionType string          `gorm:"type:varchar(16);not null;column:transaction_type"`
	AccountID       int64           `gorm:"not null;index;column:account_id"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transaction"
}

// Models lists the GORM models in migration order.
func Models() []any {
	return []any{&Account{}, &Transaction{}}
}
