// internal/bank/bank.go

// Package bank 定義核心商業邏輯：開戶、存款、提款、轉帳、鎖定與交易日誌。
// 每個帳戶自帶互斥鎖；Bank 負責把「餘額變更」與「日誌追加」組成對外看起來原子的操作。
// 金額以 decimal.Decimal 表示，加減皆為精確運算，不會有浮點誤差。
package bank

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banksystem/pkg/logger"
)

// Bank 為轉帳協調者 (Transfer Coordinator)：
//   - store：帳戶查詢、帳號配發與交易日誌。
//   - now：時間來源，測試可替換。
//
// 日誌追加一律在持有該帳戶鎖時進行，因此每本日誌的順序與餘額變更順序一致。
type Bank struct {
	store *Store
	now   func() time.Time
}

// NewBank 以既有的 Store 建立 Bank。
func NewBank(store *Store) *Bank {
	return &Bank{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// OpenAccount 為使用者開立新帳戶。
func (b *Bank) OpenAccount(userID int) int64 {
	n := b.store.OpenAccount(userID)
	logger.Log.Debug("account opened", logger.Int64("account", n), logger.Int("user_id", userID))
	return n
}

// GetAccount 依帳號取得帳戶；不存在回傳 ErrNoSuchAccount。
func (b *Bank) GetAccount(n int64) (*Account, error) {
	return b.store.GetAccount(n)
}

// GetAccountsForUser 回傳使用者的所有帳戶；未知使用者回傳 ErrNoSuchUser。
func (b *Bank) GetAccountsForUser(userID int) ([]*Account, error) {
	return b.store.GetAccountsForUser(userID)
}

// Deposit 存款：查帳戶 → 存入 → 追加一筆 +amt 紀錄。
// 日誌只是記帳用途；若追加失敗，已完成的存款不回滾。
// 金額須通過 CheckAmount，否則在取得帳戶鎖之前就會被拒絕。
func (b *Bank) Deposit(n int64, amt decimal.Decimal) error {
	if err := CheckAmount(amt); err != nil {
		return b.reject("deposit", err, logger.Int64("account", n))
	}
	a, err := b.store.GetAccount(n)
	if err != nil {
		return b.reject("deposit", err, logger.Int64("account", n))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.deposit(amt); err != nil {
		return b.reject("deposit", err, logger.Int64("account", n))
	}
	b.record(Record{ID: uuid.New(), Kind: KindDeposit, Account: n, From: n, To: n, Amount: amt, Time: b.now()})
	return nil
}

// Withdraw 提款：查帳戶 → 扣款 → 追加一筆 -amt 紀錄。
func (b *Bank) Withdraw(n int64, amt decimal.Decimal) error {
	if err := CheckAmount(amt); err != nil {
		return b.reject("withdraw", err, logger.Int64("account", n))
	}
	a, err := b.store.GetAccount(n)
	if err != nil {
		return b.reject("withdraw", err, logger.Int64("account", n))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	out, err := a.withdraw(amt)
	if err != nil {
		return b.reject("withdraw", err, logger.Int64("account", n))
	}
	b.record(Record{ID: uuid.New(), Kind: KindWithdraw, Account: n, From: n, To: n, Amount: out.Neg(), Time: b.now()})
	return nil
}

// Transfer 轉帳：
//  1. 檢核金額（符號與位數）與兩端帳戶存在性。
//  2. 依帳號由小到大取得兩個帳戶的鎖，A→B 與 B→A 同時進行也不會死結。
//  3. 先檢查來源（鎖定、餘額），再檢查目標（鎖定），任一失敗則完全不改變狀態。
//  4. 扣款後把扣出的同一個值存入目標，並在雙方日誌各追加一筆，共用同一個 ID 與時間。
func (b *Bank) Transfer(from, to int64, amt decimal.Decimal) error {
	if err := CheckAmount(amt); err != nil {
		return b.reject("transfer", err, logger.Int64("from", from), logger.Int64("to", to))
	}
	fields := []logger.Field{logger.Int64("from", from), logger.Int64("to", to), logger.Stringer("amount", amt)}
	if from == to {
		return b.reject("transfer", ErrSameAccount, fields...)
	}
	src, err := b.store.GetAccount(from)
	if err != nil {
		return b.reject("transfer", err, fields...)
	}
	dst, err := b.store.GetAccount(to)
	if err != nil {
		return b.reject("transfer", err, fields...)
	}

	first, second := src, dst
	if first.number > second.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := src.checkWithdraw(amt); err != nil {
		return b.reject("transfer", err, fields...)
	}
	if err := dst.checkDeposit(amt); err != nil {
		return b.reject("transfer", err, fields...)
	}
	moved, err := src.withdraw(amt)
	if err != nil {
		return b.reject("transfer", err, fields...)
	}
	if err := dst.deposit(moved); err != nil {
		// 兩端都已在鎖內檢查過，這裡只可能是程式錯誤；把款項退回來源。
		src.balance = src.balance.Add(moved)
		return b.reject("transfer", err, fields...)
	}

	id, now := uuid.New(), b.now()
	b.record(Record{ID: id, Kind: KindTransferOut, Account: from, From: from, To: to, Amount: moved.Neg(), Time: now})
	b.record(Record{ID: id, Kind: KindTransferIn, Account: to, From: from, To: to, Amount: moved, Time: now})
	logger.Log.Debug("transfer completed", append(fields, logger.Stringer("id", id))...)
	return nil
}

// LockAccount 鎖定帳戶，之後的存提款皆回傳 ErrAccountLocked。
func (b *Bank) LockAccount(n int64) error {
	a, err := b.store.GetAccount(n)
	if err != nil {
		return err
	}
	a.Lock()
	return nil
}

// UnlockAccount 解除帳戶鎖定。
func (b *Bank) UnlockAccount(n int64) error {
	a, err := b.store.GetAccount(n)
	if err != nil {
		return err
	}
	a.Unlock()
	return nil
}

// GetTransactionLog 依時間順序回傳帳戶的交易日誌（值拷貝）。
func (b *Bank) GetTransactionLog(n int64) ([]Record, error) {
	return b.store.GetTransactions(n)
}

// record 追加日誌；失敗只記錄警告，不影響已完成的餘額變更。
func (b *Bank) record(rec Record) {
	if err := b.store.AppendTransaction(rec.Account, rec); err != nil {
		logger.Log.Warn("couldn't append transaction record",
			logger.Int64("account", rec.Account), logger.Stringer("id", rec.ID), logger.Error(err))
	}
}

// reject 以 Debug 等級記錄被拒絕的操作並原樣回傳錯誤。
func (b *Bank) reject(op string, err error, fields ...logger.Field) error {
	logger.Log.Debug(op+" rejected", append(fields, logger.Error(err))...)
	return err
}
