package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/amirasaad/ledger/infra"
	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  create [account_number] [balance]
  deposit <account_id> <amount>
  withdraw <account_id> <amount>
  statement <account_id>
  balance <account_id>
  migrate
  token <subject>`

var errUsage = errors.New("invalid usage")

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	headColor = color.New(color.FgCyan, color.Bold)
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		} else {
			errColor.Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	// CLI output goes to out; keep the service logs quiet.
	cfg.Log.Level = int(slog.LevelWarn)
	cfg.Env = "cli"

	switch cmd := args[0]; cmd {
	case "migrate":
		return migrate(cfg, out)
	case "token":
		return token(ctx, cfg, args[1:], out)
	case "create", "deposit", "withdraw", "statement", "balance":
		cfg.Redis.URL = ""
		deps, cleanup, err := initializer.InitializeDependencies(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		a := app.New(deps, cfg)
		return ledgerCommand(ctx, a, cmd, args[1:], out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func ledgerCommand(ctx context.Context, a *app.App, cmd string, args []string, out io.Writer) error {
	svc := a.AccountService
	switch cmd {
	case "create":
		in := dto.AccountCreate{}
		if len(args) > 0 {
			in.AccountNumber = args[0]
		}
		if len(args) > 1 {
			balance, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid balance: %w", err)
			}
			in.Balance = balance
		}
		acc, err := svc.CreateAccount(ctx, in)
		if err != nil {
			return err
		}
		okColor.Fprintf(out, "Account created: ID=%d Number=%s Balance=%s\n", acc.ID, acc.AccountNumber, acc.Balance.StringFixed(2)) //nolint:errcheck
	case "deposit", "withdraw":
		if len(args) < 2 {
			return fmt.Errorf("%w: %s <account_id> <amount>", errUsage, cmd)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		op, verb := svc.Deposit, "Deposited"
		if cmd == "withdraw" {
			op, verb = svc.Withdraw, "Withdrew"
		}
		acc, err := op(ctx, id, amount)
		if err != nil {
			return err
		}
		okColor.Fprintf(out, "%s %s. New balance of account %d: %s\n", verb, amount.String(), id, acc.Balance.StringFixed(2)) //nolint:errcheck
	case "balance":
		if len(args) < 1 {
			return fmt.Errorf("%w: balance <account_id>", errUsage)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		acc, err := svc.GetAccount(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Account %d (%s) balance: %s\n", acc.ID, acc.AccountNumber, acc.Balance.StringFixed(2))
	case "statement":
		if len(args) < 1 {
			return fmt.Errorf("%w: statement <account_id>", errUsage)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		txs, err := svc.GetAccountStatement(ctx, id)
		if err != nil {
			return err
		}
		headColor.Fprintf(out, "%-20s  %-8s  %12s  %12s\n", "DATE", "TYPE", "AMOUNT", "BALANCE") //nolint:errcheck
		for _, t := range txs {
			fmt.Fprintf(out, "%-20s  %-8s  %12s  %12s\n",
				t.Date.Format("2006-01-02 15:04:05"),
				t.TransactionType,
				t.Amount.StringFixed(2),
				t.Balance.StringFixed(2),
			)
		}
	}
	return nil
}

func migrate(cfg *config.App, out io.Writer) error {
	cfg.DB.AutoMigrate = true
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close() //nolint:errcheck
	}
	okColor.Fprintln(out, "Database schema is up to date") //nolint:errcheck
	return nil
}

func token(ctx context.Context, cfg *config.App, args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: token <subject>", errUsage)
	}
	// Tokens are signed with AUTH_JWT_SECRET whatever the server's strategy.
	cfg.Auth.Strategy = "jwt"
	a := app.New(&app.Deps{Logger: slog.Default()}, cfg)
	t, err := a.AuthService.GenerateToken(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, t)
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid account id %q", raw)
	}
	return id, nil
}
