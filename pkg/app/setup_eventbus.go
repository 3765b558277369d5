package app

import (
	"context"
	"fmt"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/eventbus"
)

// setupEventBus registers the application's event handlers.
func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	a.Deps.EventBus.Register(
		account.TransactionRecordedEventType,
		AuditTransactionRecorded(a.Deps),
	)
}

// AuditTransactionRecorded writes one audit log line per recorded transaction.
func AuditTransactionRecorded(deps *Deps) eventbus.HandlerFunc {
	logger := deps.Logger.With("handler", "audit")
	return func(ctx context.Context, e eventbus.Event) error {
		var evt account.TransactionRecorded
		switch v := e.(type) {
		case account.TransactionRecorded:
			evt = v
		case *account.TransactionRecorded:
			evt = *v
		default:
			return fmt.Errorf("unexpected event %T", e)
		}
		logger.Info("transaction recorded",
			"transactionID", evt.TransactionID,
			"accountID", evt.AccountID,
			"type", evt.TransactionType.String(),
			"amount", evt.Amount.String(),
			"balance", evt.Balance.String(),
		)
		return nil
	}
}
