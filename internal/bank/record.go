// internal/bank/record.go
//
// 交易紀錄 (Record) 為每本帳戶日誌中的一筆資料：
//   - 存款、提款各產生一筆；轉帳在雙方日誌各產生一筆，共用同一個 ID。
//   - Seq 由 Store 在追加時配發，全 Store 單調遞增，可用來比對跨帳戶的先後。
//   - 紀錄以值的方式回傳，呼叫端無法改動已存的日誌。

package bank

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind 標示交易紀錄的種類。
type Kind string

const (
	KindDeposit     Kind = "deposit"
	KindWithdraw    Kind = "withdraw"
	KindTransferOut Kind = "transfer-out"
	KindTransferIn  Kind = "transfer-in"
)

// Record 為一筆交易紀錄。
// Amount 帶正負號：存入本帳戶為正，自本帳戶扣出為負。
// 存提款時 From == To == Account；轉帳的兩筆紀錄共用同一個 ID 與 Time。
type Record struct {
	ID      uuid.UUID       `json:"id"`
	Seq     uint64          `json:"seq"`
	Kind    Kind            `json:"kind"`
	Account int64           `json:"account"`
	From    int64           `json:"from"`
	To      int64           `json:"to"`
	Amount  decimal.Decimal `json:"amount"`
	Time    time.Time       `json:"time"`
}

// Counterpart 回傳這筆紀錄的對方帳號；存提款回傳本帳號。
func (r Record) Counterpart() int64 {
	if r.Account == r.From {
		return r.To
	}
	return r.From
}
