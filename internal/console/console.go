// internal/console/console.go

// Package console 提供文字選單介面，作為 bank 模組的應用層。
// Console 只負責：
//  1. 顯示選單並讀取、驗證輸入
//  2. 呼叫 Ledger 執行商業邏輯
//  3. 把結果或錯誤轉成使用者訊息
//
// bank 不依賴 console；console 只透過 Ledger 介面使用 bank。
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"banksystem/internal/bank"
	"banksystem/internal/user"
	"banksystem/pkg/logger"
)

// Directory 為 console 讀取與修改使用者姓名所需的介面，由 *user.Registry 實作。
type Directory interface {
	Get(id int) (user.User, error)
	Rename(id int, first, last string) error
}

// Ledger 為 console 所需的最小介面，由 *bank.Bank 實作。
type Ledger interface {
	OpenAccount(userID int) int64
	GetAccount(n int64) (*bank.Account, error)
	GetAccountsForUser(userID int) ([]*bank.Account, error)
	Deposit(n int64, amt decimal.Decimal) error
	Withdraw(n int64, amt decimal.Decimal) error
	Transfer(from, to int64, amt decimal.Decimal) error
	LockAccount(n int64) error
	UnlockAccount(n int64) error
	GetTransactionLog(n int64) ([]bank.Record, error)
}

type action struct {
	title string
	run   func(ctx context.Context) error
}

// Console 為單一使用者的選單迴圈。
type Console struct {
	ledger Ledger
	users  Directory
	userID int
	in     *bufio.Scanner
	out    io.Writer

	lines   <-chan string
	actions []action
}

// New 建立 userID 專用的 Console；in/out 通常為 os.Stdin/os.Stdout，測試時可替換。
func New(l Ledger, users Directory, userID int, in io.Reader, out io.Writer) *Console {
	c := &Console{ledger: l, users: users, userID: userID, in: bufio.NewScanner(in), out: out}
	c.actions = []action{
		{"View all bank accounts", c.listAccounts},
		{"View balance on all accounts", c.listBalances},
		{"View balance for a bank account", c.showBalance},
		{"View transaction history for a bank account", c.showHistory},
		{"Deposit money to a bank account", c.deposit},
		{"Withdraw money from a bank account", c.withdraw},
		{"Transfer money between accounts", c.transfer},
		{"Lock an account", c.lock},
		{"Unlock an account", c.unlock},
		{"Open a new bank account", c.open},
		{"Change your name", c.rename},
	}
	return c
}

// Run 執行選單迴圈，直到使用者選擇離開、輸入結束或 ctx 被取消。
// 正常離開回傳 nil；ctx 取消回傳 ctx.Err()；使用者不存在則直接回傳錯誤。
func (c *Console) Run(ctx context.Context) error {
	u, err := c.users.Get(c.userID)
	if err != nil {
		return fmt.Errorf("console user %d: %w", c.userID, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.lines = c.scan(ctx)

	c.printf("Welcome, %s.\n", u.FullName())
	exit := len(c.actions) + 1
	for {
		c.showMenu(exit)
		line, err := c.readLine(ctx)
		if err != nil {
			return c.stop(err)
		}
		if line == "" {
			continue
		}
		choice, err := strconv.Atoi(line)
		switch {
		case err != nil:
			c.println("You have to supply an integer.")
		case choice == exit:
			c.println("Now exiting.")
			return nil
		case choice < 1 || choice > len(c.actions):
			c.println("That is not a valid menu option.")
		default:
			if err := c.actions[choice-1].run(ctx); err != nil {
				return c.stop(err)
			}
		}
	}
}

// stop 把輸入結束視為正常離開。
func (c *Console) stop(err error) error {
	if errors.Is(err, io.EOF) {
		c.println("Now exiting.")
		return nil
	}
	return err
}

// scan 在背景讀取輸入，讓 Run 在等待輸入時也能回應 ctx 取消。
func (c *Console) scan(ctx context.Context) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		for c.in.Scan() {
			select {
			case ch <- strings.TrimSpace(c.in.Text()):
			case <-ctx.Done():
				return
			}
		}
		if err := c.in.Err(); err != nil {
			logger.Log.Warn("couldn't read console input", logger.Error(err))
		}
	}()
	return ch
}

func (c *Console) showMenu(exit int) {
	c.println("---Main menu---")
	for i, a := range c.actions {
		c.printf("%d. %s\n", i+1, a.title)
	}
	c.printf("%d. Exit\n", exit)
}

func (c *Console) accounts() ([]*bank.Account, bool) {
	accts, err := c.ledger.GetAccountsForUser(c.userID)
	if err != nil {
		c.fail("list accounts", err)
		return nil, false
	}
	return accts, true
}

func (c *Console) listAccounts(context.Context) error {
	accts, ok := c.accounts()
	if !ok {
		return nil
	}
	c.println("Accounts:")
	for _, a := range accts {
		c.println(a.Number())
	}
	return nil
}

func (c *Console) listBalances(context.Context) error {
	accts, ok := c.accounts()
	if !ok {
		return nil
	}
	for _, a := range accts {
		c.printBalance(a)
	}
	return nil
}

func (c *Console) printBalance(a *bank.Account) {
	state := ""
	if a.Locked() {
		state = " (locked)"
	}
	c.printf("Account %d has balance: %s%s\n", a.Number(), a.Balance().String(), state)
}

func (c *Console) showBalance(ctx context.Context) error {
	n, ok, err := c.readAccountNumber(ctx)
	if !ok {
		return err
	}
	a, err := c.ledger.GetAccount(n)
	if err != nil {
		c.fail("balance", err)
		return nil
	}
	c.printBalance(a)
	return nil
}

func (c *Console) showHistory(ctx context.Context) error {
	n, ok, err := c.readAccountNumber(ctx)
	if !ok {
		return err
	}
	logs, err := c.ledger.GetTransactionLog(n)
	if err != nil {
		c.fail("history", err)
		return nil
	}
	if len(logs) == 0 {
		c.println("No transactions for that account.")
		return nil
	}
	c.printf("Transaction history for account: %d\n", n)
	for _, r := range logs {
		c.printf("- %s %-12s %s", r.Time.Format(time.RFC3339), r.Kind, r.Amount.String())
		switch r.Kind {
		case bank.KindTransferOut:
			c.printf(" (to %d)", r.Counterpart())
		case bank.KindTransferIn:
			c.printf(" (from %d)", r.Counterpart())
		}
		c.println()
	}
	return nil
}

func (c *Console) deposit(ctx context.Context) error {
	amt, ok, err := c.readAmount(ctx)
	if !ok {
		return err
	}
	n, ok, err := c.readAccountNumber(ctx)
	if !ok {
		return err
	}
	if err := c.ledger.Deposit(n, amt); err != nil {
		c.fail("deposit", err)
		return nil
	}
	c.printf("Deposited %s to account %d.\n", amt.String(), n)
	return nil
}

func (c *Console) withdraw(ctx context.Context) error {
	amt, ok, err := c.readAmount(ctx)
	if !ok {
		return err
	}
	n, ok, err := c.readAccountNumber(ctx)
	if !ok {
		return err
	}
	if err := c.ledger.Withdraw(n, amt); err != nil {
		c.fail("withdraw", err)
		return nil
	}
	c.printf("Withdrew %s from account %d.\n", amt.String(), n)
	return nil
}

func (c *Console) transfer(ctx context.Context) error {
	amt, ok, err := c.readAmount(ctx)
	if !ok {
		return err
	}
	c.println("From account")
	from, ok, err := c.readAccountNumber(ctx)
	if !ok {
		return err
	}
	c.println("To account")
	to, ok, err := c.readAccountNumber(ctx)
	if !ok {
		return err
	}
	if err := c.ledger.Transfer(from, to, amt); err != nil {
		c.fail("transfer", err)
		return nil
	}
	c.printf("Transferred %s from account %d to account %d.\n", amt.String(), from, to)
	return nil
}

func (c *Console) lock(ctx context.Context) error {
	n, ok, err := c.readAccountNumber(ctx)
	if !ok {
		return err
	}
	if err := c.ledger.LockAccount(n); err != nil {
		c.fail("lock", err)
		return nil
	}
	c.printf("Account %d is now locked.\n", n)
	return nil
}

func (c *Console) unlock(ctx context.Context) error {
	n, ok, err := c.readAccountNumber(ctx)
	if !ok {
		return err
	}
	if err := c.ledger.UnlockAccount(n); err != nil {
		c.fail("unlock", err)
		return nil
	}
	c.printf("Account %d is now unlocked.\n", n)
	return nil
}

func (c *Console) open(context.Context) error {
	n := c.ledger.OpenAccount(c.userID)
	c.printf("Opened account %d.\n", n)
	return nil
}

func (c *Console) rename(ctx context.Context) error {
	first, ok, err := c.readName(ctx, "first")
	if !ok {
		return err
	}
	last, ok, err := c.readName(ctx, "last")
	if !ok {
		return err
	}
	if err := c.users.Rename(c.userID, first, last); err != nil {
		c.fail("rename", err)
		return nil
	}
	u, err := c.users.Get(c.userID)
	if err != nil {
		c.fail("rename", err)
		return nil
	}
	c.printf("Your name is now %s.\n", u.FullName())
	return nil
}
