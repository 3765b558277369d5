package account

import (
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/middleware"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	"github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
)

// Routes registers the account endpoints under /api/accounts:
//   - POST /api/accounts                      : open an account
//   - GET  /api/accounts/:accountId           : read an account
//   - POST /api/accounts/:accountId/deposit   : deposit ?amount=
//   - POST /api/accounts/:accountId/withdraw  : withdraw ?amount=
//   - GET  /api/accounts/:accountId/statement : list the account's transactions
//
// A non-nil authSvc makes every route require a bearer token.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *auth.Service) {
	var handlers []fiber.Handler
	if authSvc != nil {
		handlers = append(handlers, middleware.Protected(authSvc))
	}
	group := app.Group("/api/accounts", handlers...)

	group.Post("/", CreateAccount(accountSvc))
	group.Get("/:accountId", GetAccount(accountSvc))
	group.Post("/:accountId/deposit", Deposit(accountSvc))
	group.Post("/:accountId/withdraw", Withdraw(accountSvc))
	group.Get("/:accountId/statement", Statement(accountSvc))
}

// CreateAccount returns a Fiber handler that opens a new account.
// @Summary Open an account
// @Description Creates an account with an optional account number and opening balance.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest false "Account details"
// @Success 201 {object} AccountDTO "Account created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /api/accounts [post]
func CreateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := &CreateAccountRequest{}
		if len(c.Body()) > 0 {
			var err error
			if input, err = common.BindAndValidate[CreateAccountRequest](c); input == nil {
				return err
			}
		}
		a, err := accountSvc.CreateAccount(c.UserContext(), dto.AccountCreate{
			AccountNumber: input.AccountNumber,
			Balance:       input.Balance,
		})
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		resp := ToAccountDTO(a)
		resp.ID = a.ID
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GetAccount returns a Fiber handler that reads an account.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param accountId path int true "Account ID"
// @Success 200 {object} AccountDTO
// @Failure 400 {object} common.ProblemDetails "Invalid account id"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /api/accounts/{accountId} [get]
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, err := common.ParseParams[AccountParams](c)
		if params == nil {
			return err
		}
		a, err := accountSvc.GetAccount(c.UserContext(), params.AccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return c.JSON(ToAccountDTO(a))
	}
}

// Deposit returns a Fiber handler that deposits ?amount= into an account
// and responds with the updated account.
// @Summary Deposit funds
// @Tags accounts
// @Produce json
// @Param accountId path int true "Account ID"
// @Param amount query number true "Amount to deposit"
// @Success 200 {object} AccountDTO
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /api/accounts/{accountId}/deposit [post]
func Deposit(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := parseMovement(c)
		if m == nil {
			return err
		}
		log.Infof("Deposit handler: account %d, amount %s, caller %q", m.accountID, m.amount, middleware.Subject(c))
		a, err := accountSvc.Deposit(c.UserContext(), m.accountID, m.amount)
		if err != nil {
			log.Errorf("Failed to deposit: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return c.JSON(ToAccountDTO(a))
	}
}

// Withdraw returns a Fiber handler that withdraws ?amount= from an account
// and responds with the updated account.
// @Summary Withdraw funds
// @Tags accounts
// @Produce json
// @Param accountId path int true "Account ID"
// @Param amount query number true "Amount to withdraw"
// @Success 200 {object} AccountDTO
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Insufficient funds"
// @Router /api/accounts/{accountId}/withdraw [post]
func Withdraw(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := parseMovement(c)
		if m == nil {
			return err
		}
		log.Infof("Withdraw handler: account %d, amount %s, caller %q", m.accountID, m.amount, middleware.Subject(c))
		a, err := accountSvc.Withdraw(c.UserContext(), m.accountID, m.amount)
		if err != nil {
			log.Errorf("Failed to withdraw: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return c.JSON(ToAccountDTO(a))
	}
}

// Statement returns a Fiber handler that lists an account's transactions in
// the order they were recorded.
// @Summary Account statement
// @Tags accounts
// @Produce json
// @Param accountId path int true "Account ID"
// @Success 200 {array} TransactionDTO
// @Failure 400 {object} common.ProblemDetails "Invalid account id"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /api/accounts/{accountId}/statement [get]
func Statement(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, err := common.ParseParams[AccountParams](c)
		if params == nil {
			return err
		}
		txs, err := accountSvc.GetAccountStatement(c.UserContext(), params.AccountID)
		if err != nil {
			log.Errorf("Failed to get statement for account %d: %v", params.AccountID, err)
			return common.ProblemDetailsJSON(c, "Failed to get statement", err)
		}
		dtos := make([]TransactionDTO, 0, len(txs))
		for _, t := range txs {
			dtos = append(dtos, ToTransactionDTO(t))
		}
		return c.JSON(dtos)
	}
}

type movement struct {
	accountID int64
	amount    decimal.Decimal
}

// parseMovement reads the account id and amount shared by deposit and
// withdraw. A nil movement means the problem response has been written.
func parseMovement(c *fiber.Ctx) (*movement, error) {
	params, err := common.ParseParams[AccountParams](c)
	if params == nil {
		return nil, err
	}
	query, err := common.ParseQuery[AmountQuery](c)
	if query == nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(query.Amount)
	if err != nil {
		return nil, common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
	}
	return &movement{accountID: params.AccountID, amount: amount}, nil
}
