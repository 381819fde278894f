// internal/console/input.go
//
// 讀取並驗證使用者輸入。空白代表放棄目前操作；
// 非數字、負數與位數過多各有自己的提示訊息，皆回到主選單而不是結束程式。

package console

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"banksystem/internal/bank"
)

// readLine 等待下一行輸入；輸入結束回傳 io.EOF，ctx 取消回傳 ctx.Err()。
func (c *Console) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// readAmount 回傳 ok=false 代表放棄或輸入不合法（訊息已輸出）。
func (c *Console) readAmount(ctx context.Context) (amt decimal.Decimal, ok bool, err error) {
	c.println("Enter an amount of money, leave blank to exit")
	line, err := c.readLine(ctx)
	if err != nil || line == "" {
		return decimal.Zero, false, err
	}
	amt, perr := decimal.NewFromString(line)
	if perr != nil {
		c.println("The input has to be a number")
		return decimal.Zero, false, nil
	}
	if amt.IsNegative() {
		c.println("Number has to be a positive number")
		return decimal.Zero, false, nil
	}
	if errors.Is(bank.CheckAmount(amt), bank.ErrAmountOutOfRange) {
		c.println("The amount has too many digits")
		return decimal.Zero, false, nil
	}
	return amt, true, nil
}

// readAccountNumber 與 readAmount 相同規則，但只接受整數帳號。
func (c *Console) readAccountNumber(ctx context.Context) (n int64, ok bool, err error) {
	c.println("Enter account number, leave blank to exit")
	line, err := c.readLine(ctx)
	if err != nil || line == "" {
		return 0, false, err
	}
	n, perr := strconv.ParseInt(line, 10, 64)
	if perr != nil {
		c.println("The input has to be a number")
		return 0, false, nil
	}
	if n < 0 {
		c.println("Account number has to be a positive number")
		return 0, false, nil
	}
	return n, true, nil
}

// readName 讀取姓名的一部分（first 或 last），空白代表放棄。
func (c *Console) readName(ctx context.Context, part string) (name string, ok bool, err error) {
	c.printf("Enter your %s name, leave blank to exit\n", part)
	line, err := c.readLine(ctx)
	if err != nil || line == "" {
		return "", false, err
	}
	return line, true, nil
}
