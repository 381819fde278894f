// internal/bank/account.go
//
// Account 只負責自己的餘額與鎖定旗標，不知道其他帳戶或交易日誌的存在。
// 所有餘額變更都在帳戶自己的互斥鎖內完成，呼叫端不需要任何額外同步。

package bank

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Account represents a bank account.
//   - number / owner：建立後不可變。
//   - mu：保護 balance 與 locked；讀取用 RLock，變更用 Lock。
type Account struct {
	number int64
	owner  int

	mu      sync.RWMutex
	balance decimal.Decimal
	locked  bool
}

func newAccount(number int64, owner int) *Account {
	return &Account{number: number, owner: owner, balance: decimal.Zero}
}

// Number 回傳帳號。
func (a *Account) Number() int64 { return a.number }

// Owner 回傳擁有者的 user id。
func (a *Account) Owner() int { return a.owner }

// Balance 回傳目前餘額；鎖定中的帳戶仍可讀取。
func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// Locked 回傳帳戶是否鎖定。
func (a *Account) Locked() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.locked
}

// Deposit 存款：金額須通過 CheckAmount；帳戶鎖定時回傳 ErrAccountLocked。
func (a *Account) Deposit(amt decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deposit(amt)
}

// Withdraw 提款並回傳實際扣除的金額，讓轉帳可直接把同一個值存入另一端。
// 餘額不足時回傳 ErrInsufficientFunds，絕不扣成負數。
func (a *Account) Withdraw(amt decimal.Decimal) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdraw(amt)
}

// Lock 鎖定帳戶（可重複呼叫）。
func (a *Account) Lock() {
	a.mu.Lock()
	a.locked = true
	a.mu.Unlock()
}

// Unlock 解除鎖定（可重複呼叫）。
func (a *Account) Unlock() {
	a.mu.Lock()
	a.locked = false
	a.mu.Unlock()
}

// 以下小寫方法皆假設呼叫端已持有 a.mu 寫鎖。

func (a *Account) deposit(amt decimal.Decimal) error {
	if err := a.checkDeposit(amt); err != nil {
		return err
	}
	a.balance = a.balance.Add(amt)
	return nil
}

func (a *Account) withdraw(amt decimal.Decimal) (decimal.Decimal, error) {
	if err := a.checkWithdraw(amt); err != nil {
		return decimal.Zero, err
	}
	a.balance = a.balance.Sub(amt)
	return amt, nil
}

// MaxScale 為金額指數的上下限：最多 18 位小數，指數最大 10^18。
// decimal 加減時會把兩邊對齊到較小的指數，指數不設限的話一次加法就可能產生數千萬位數。
const MaxScale = 18

// CheckAmount 檢查金額可否入帳：負數回傳 ErrNegativeAmount，指數超出 ±MaxScale 回傳 ErrAmountOutOfRange。
// 只看符號與指數，不做任何算術，對任何輸入都能立即回傳。
func CheckAmount(amt decimal.Decimal) error {
	if amt.IsNegative() {
		return ErrNegativeAmount
	}
	if e := amt.Exponent(); e < -MaxScale || e > MaxScale {
		return ErrAmountOutOfRange
	}
	return nil
}

func (a *Account) checkDeposit(amt decimal.Decimal) error {
	if err := CheckAmount(amt); err != nil {
		return err
	}
	if a.locked {
		return &AccountError{Account: a.number, Err: ErrAccountLocked}
	}
	return nil
}

func (a *Account) checkWithdraw(amt decimal.Decimal) error {
	if err := CheckAmount(amt); err != nil {
		return err
	}
	if a.locked {
		return &AccountError{Account: a.number, Err: ErrAccountLocked}
	}
	if amt.GreaterThan(a.balance) {
		return &AccountError{Account: a.number, Err: ErrInsufficientFunds}
	}
	return nil
}
