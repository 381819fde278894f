// internal/bank/store.go
//
// Store 是帳戶身分、索引與交易日誌的唯一來源 (Ledger Store)：
//   - next：帳號配發器，以原子遞增產生，同一個 Store 內絕不重複，新 Store 從 0 開始。
//   - mu：只保護三張索引表的「結構」（新增帳戶／日誌），臨界區極短；
//     餘額本身由各 Account 自己的鎖保護，不同帳戶的操作互不阻塞。
//   - 每本 journal 有自己的鎖，讀取與追加可以並行於其他帳戶。
//
// 鎖的取得順序固定為 Account.mu → Store.mu → journal.mu，不會反向，因此不會形成循環。

package bank

import (
	"fmt"
	"sync"
	"sync/atomic"
)

type Store struct {
	next int64
	seq  atomic.Uint64

	mu       sync.RWMutex
	accounts map[int64]*Account
	byUser   map[int][]int64
	logs     map[int64]*journal
}

// journal 為單一帳戶的 append-only 交易日誌。
type journal struct {
	mu      sync.RWMutex
	records []Record
}

// NewStore 建立空白的 Store；三張表與計數器一起初始化。
func NewStore() *Store {
	return &Store{
		accounts: make(map[int64]*Account),
		byUser:   make(map[int][]int64),
		logs:     make(map[int64]*journal),
	}
}

// newNumber 回傳下一個帳號。N 個並行呼叫會拿到 N 個連續且不重複的號碼。
func (s *Store) newNumber() int64 {
	return atomic.AddInt64(&s.next, 1) - 1
}

// OpenAccount 為 userID 開立新帳戶（餘額 0、未鎖定）並回傳帳號。
// 任何 userID 皆可，首次出現的使用者會自動建立帳戶清單。
func (s *Store) OpenAccount(userID int) int64 {
	n := s.newNumber()
	a := newAccount(n, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[n] = a
	s.logs[n] = &journal{}
	s.byUser[userID] = append(s.byUser[userID], n)
	return n
}

// GetAccount 依帳號查詢；不存在時回傳 ErrNoSuchAccount。
func (s *Store) GetAccount(n int64) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[n]
	if !ok {
		return nil, &AccountError{Account: n, Err: ErrNoSuchAccount}
	}
	return a, nil
}

// GetAccountsForUser 依開戶順序回傳使用者的所有帳戶。
// 從未開戶的使用者回傳 ErrNoSuchUser，而不是空切片。
func (s *Store) GetAccountsForUser(userID int) ([]*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nums, ok := s.byUser[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNoSuchUser)
	}
	out := make([]*Account, 0, len(nums))
	for _, n := range nums {
		out = append(out, s.accounts[n])
	}
	return out, nil
}

// AppendTransaction 將 rec 追加到帳戶 n 的日誌，並配發全域遞增的 Seq。
func (s *Store) AppendTransaction(n int64, rec Record) error {
	s.mu.RLock()
	j, ok := s.logs[n]
	s.mu.RUnlock()
	if !ok {
		return &AccountError{Account: n, Err: ErrNoSuchAccount}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	rec.Seq = s.seq.Add(1)
	j.records = append(j.records, rec)
	return nil
}

// GetTransactions 回傳帳戶 n 的日誌（值拷貝），只保證看得到呼叫前已完成的追加。
func (s *Store) GetTransactions(n int64) ([]Record, error) {
	s.mu.RLock()
	j, ok := s.logs[n]
	s.mu.RUnlock()
	if !ok {
		return nil, &AccountError{Account: n, Err: ErrNoSuchAccount}
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]Record, len(j.records))
	copy(out, j.records)
	return out, nil
}

// Len 回傳已開立的帳戶數量。
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
