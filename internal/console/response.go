// internal/console/response.go
//
// 本檔負責統一輸出格式與「領域錯誤 → 使用者訊息」的對應。
// 每種錯誤對應一段固定訊息；任何錯誤都不會結束選單迴圈。

package console

import (
	"errors"
	"fmt"

	"banksystem/internal/bank"
	"banksystem/internal/user"
	"banksystem/pkg/logger"
)

func (c *Console) println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}

// fail 輸出錯誤對應的訊息，並以 Warn 等級記錄。
func (c *Console) fail(op string, err error) {
	logger.Log.Warn("console operation failed",
		logger.String("op", op), logger.Int("user_id", c.userID), logger.Error(err))
	c.println(message(err))
}

// message 將錯誤轉為使用者看得懂的句子。
func message(err error) string {
	var acctErr *bank.AccountError
	hasAccount := errors.As(err, &acctErr)

	switch {
	case errors.Is(err, bank.ErrNoSuchAccount):
		return "That account does not exist."
	case errors.Is(err, bank.ErrNoSuchUser):
		return "You don't have any bank accounts yet."
	case errors.Is(err, bank.ErrNegativeAmount):
		return "You can't deposit a negative amount."
	case errors.Is(err, bank.ErrAmountOutOfRange):
		return "The amount has too many digits."
	case errors.Is(err, bank.ErrInsufficientFunds):
		return "The withdrawal exceeds funds."
	case errors.Is(err, bank.ErrAccountLocked) && hasAccount:
		return fmt.Sprintf("Account %d is locked.", acctErr.Account)
	case errors.Is(err, bank.ErrAccountLocked):
		return "The account is locked."
	case errors.Is(err, bank.ErrSameAccount):
		return "You can't transfer money to the same account."
	case errors.Is(err, user.ErrNotFound):
		return "That user does not exist."
	default:
		return "Something went wrong: " + err.Error()
	}
}
