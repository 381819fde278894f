// internal/console/console_test.go
//
// 以 strings.Reader 模擬使用者輸入、bytes.Buffer 收集輸出，
// 端對端驗證選單流程、輸入驗證與錯誤訊息對應。

package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"banksystem/internal/bank"
	"banksystem/internal/user"
	"banksystem/pkg/logger"
)

// fixture 為一個使用者與其帳戶所在的銀行。
type fixture struct {
	bank  *bank.Bank
	users *user.Registry
	id    int
}

// setup 建立一個使用者與 accounts 個帳戶。
func setup(t *testing.T, accounts int) fixture {
	t.Helper()
	f := fixture{bank: bank.NewBank(bank.NewStore()), users: user.NewRegistry()}
	f.id = f.users.Register("Ivar", "Sari").ID
	for i := 0; i < accounts; i++ {
		f.bank.OpenAccount(f.id)
	}
	return f
}

func (f fixture) console(in io.Reader, out io.Writer) *Console {
	return New(f.bank, f.users, f.id, in, out)
}

// run 以 input 執行選單並回傳全部輸出。
func run(t *testing.T, f fixture, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := f.console(strings.NewReader(input), &out).Run(context.Background()); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	return out.String()
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("output missing %q:\n%s", w, out)
		}
	}
}

func TestConsoleFlow(t *testing.T) {
	f := setup(t, 2)

	// 存 100、提 70、轉 30 到帳戶 1、查帳戶 1 餘額、查帳戶 0 日誌、列出全部餘額、離開
	input := strings.Join([]string{
		"5", "100", "0",
		"6", "70", "0",
		"7", "30", "0", "1",
		"3", "1",
		"4", "0",
		"2",
		"12",
	}, "\n") + "\n"
	out := run(t, f, input)

	mustContain(t, out,
		"Welcome, Ivar Sari.",
		"Deposited 100 to account 0.",
		"Withdrew 70 from account 0.",
		"Transferred 30 from account 0 to account 1.",
		"Account 1 has balance: 30",
		"Account 0 has balance: 0",
		"Transaction history for account: 0",
		"(to 1)",
		"Now exiting.",
	)

	logs, _ := f.bank.GetTransactionLog(0)
	if len(logs) != 3 || !logs[2].Amount.Equal(decimal.NewFromInt(-30)) {
		t.Fatalf("account 0 log unexpected: %+v", logs)
	}
}

func TestConsoleMessages(t *testing.T) {
	cases := []struct {
		name  string
		input []string
		want  string
	}{
		{"negative amount", []string{"5", "-5"}, "Number has to be a positive number"},
		{"tiny exponent", []string{"5", "1e-50000000"}, "The amount has too many digits"},
		{"huge exponent", []string{"6", "1e50000000"}, "The amount has too many digits"},
		{"bad amount", []string{"5", "abc"}, "The input has to be a number"},
		{"negative account", []string{"3", "-1"}, "Account number has to be a positive number"},
		{"bad account", []string{"3", "one"}, "The input has to be a number"},
		{"unknown account", []string{"3", "42"}, "That account does not exist."},
		{"insufficient", []string{"6", "1000", "0"}, "The withdrawal exceeds funds."},
		{"locked", []string{"8", "1", "5", "1", "1"}, "Account 1 is locked."},
		{"locked destination", []string{"5", "10", "0", "9", "1", "8", "1", "7", "5", "0", "1"}, "Account 1 is locked."},
		{"same account", []string{"7", "1", "0", "0"}, "You can't transfer money to the same account."},
		{"not an integer", []string{"x"}, "You have to supply an integer."},
		{"bad option", []string{"99"}, "That is not a valid menu option."},
		{"empty history", []string{"4", "1"}, "No transactions for that account."},
		{"unlock", []string{"8", "0", "9", "0"}, "Account 0 is now unlocked."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := setup(t, 2)
			out := run(t, f, strings.Join(append(tc.input, "12"), "\n")+"\n")
			mustContain(t, out, tc.want, "Now exiting.")
		})
	}
}

func TestConsoleBlankInputReturnsToMenu(t *testing.T) {
	f := setup(t, 1)
	out := run(t, f, "5\n\n\n12\n")

	if got := strings.Count(out, "---Main menu---"); got != 3 {
		t.Fatalf("menu shown %d times want=3:\n%s", got, out)
	}
	if strings.Contains(out, "Deposited") {
		t.Fatal("blank amount should cancel the deposit")
	}
}

func TestConsoleNewUser(t *testing.T) {
	f := setup(t, 0)
	out := run(t, f, "1\n10\n1\n12\n")

	mustContain(t, out, "You don't have any bank accounts yet.", "Opened account 0.", "Accounts:\n0\n")
}

func TestConsoleEOFExits(t *testing.T) {
	f := setup(t, 1)
	out := run(t, f, "2\n")
	mustContain(t, out, "Account 0 has balance: 0", "Now exiting.")

	// 在輸入帳號途中結束也一樣
	out = run(t, f, "5\n10\n")
	mustContain(t, out, "Now exiting.")
}

func TestConsoleContextCancel(t *testing.T) {
	f := setup(t, 1)
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- f.console(r, io.Discard).Run(ctx) }()

	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConsoleLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer logger.Replace(zap.New(core))()

	f := setup(t, 1)
	_ = run(t, f, "6\n5\n0\n12\n")

	entries := logs.FilterMessage("console operation failed").All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d want=1", len(entries))
	}
	if op := entries[0].ContextMap()["op"]; op != "withdraw" {
		t.Fatalf("op=%v want withdraw", op)
	}
}

func TestMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{bank.ErrAccountLocked, "The account is locked."},
		{bank.ErrNegativeAmount, "You can't deposit a negative amount."},
		{bank.ErrAmountOutOfRange, "The amount has too many digits."},
		{user.ErrNotFound, "That user does not exist."},
		{fmt.Errorf("user 3: %w", bank.ErrNoSuchUser), "You don't have any bank accounts yet."},
		{&bank.AccountError{Account: 7, Err: bank.ErrAccountLocked}, "Account 7 is locked."},
		{&bank.AccountError{Account: 7, Err: bank.ErrInsufficientFunds}, "The withdrawal exceeds funds."},
		{errors.New("disk on fire"), "Something went wrong: disk on fire"},
	}
	for _, tc := range cases {
		if got := message(tc.err); got != tc.want {
			t.Errorf("message(%v)=%q want %q", tc.err, got, tc.want)
		}
	}
}

// 超大或超小指數的金額須立即被擋下，帳戶不受影響。
func TestConsoleRejectsExtremeExponent(t *testing.T) {
	f := setup(t, 1)

	start := time.Now()
	out := run(t, f, "5\n1e-50000000\n0\n12\n")
	if d := time.Since(start); d > 2*time.Second {
		t.Fatalf("console took %s", d)
	}
	mustContain(t, out, "The amount has too many digits", "Now exiting.")
	if strings.Contains(out, "Deposited") {
		t.Fatal("out-of-range amount was deposited")
	}
	if logs, _ := f.bank.GetTransactionLog(0); len(logs) != 0 {
		t.Fatalf("log=%+v want empty", logs)
	}
}

func TestConsoleRename(t *testing.T) {
	f := setup(t, 0)
	out := run(t, f, "11\nAda\nLovelace\n12\n")

	mustContain(t, out, "Enter your first name", "Enter your last name", "Your name is now Ada Lovelace.")
	if u, _ := f.users.Get(f.id); u.FullName() != "Ada Lovelace" {
		t.Fatalf("registry name=%q", u.FullName())
	}

	// 放棄時姓名不變
	out = run(t, f, "11\n\n12\n")
	mustContain(t, out, "Welcome, Ada Lovelace.")
	if strings.Contains(out, "Your name is now") {
		t.Fatal("blank first name should cancel the rename")
	}
}

func TestConsoleUnknownUser(t *testing.T) {
	f := setup(t, 0)
	f.id = 42

	err := f.console(strings.NewReader("12\n"), io.Discard).Run(context.Background())
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("want user.ErrNotFound, got %v", err)
	}
}
