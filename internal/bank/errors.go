// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 這些錯誤屬於商業邏輯層級（非系統錯誤），由上層 console 轉換成對應的使用者訊息。
// 需要帶上帳號時包成 *AccountError；呼叫端以 errors.Is 判斷種類、errors.As 取出帳號。

package bank

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchAccount 代表引用了不存在的帳號。
	ErrNoSuchAccount = errors.New("no such account")

	// ErrNoSuchUser 代表該使用者從未開過任何帳戶。
	ErrNoSuchUser = errors.New("no such user")

	// ErrNegativeAmount 代表金額為負數。
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrAmountOutOfRange 代表金額的位數超出範圍（小數位數或指數過大）。
	ErrAmountOutOfRange = errors.New("amount out of range")

	// ErrInsufficientFunds 代表提款金額超過目前餘額。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountLocked 代表對已鎖定的帳戶進行存提款。
	ErrAccountLocked = errors.New("account is locked")

	// ErrSameAccount 代表轉帳來源與目標帳戶相同。
	ErrSameAccount = errors.New("from and to are same")
)

// AccountError 把領域錯誤與相關帳號綁在一起。
type AccountError struct {
	Account int64
	Err     error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("account %d: %v", e.Account, e.Err)
}

func (e *AccountError) Unwrap() error { return e.Err }
