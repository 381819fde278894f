// internal/config/config.go
//
// 啟動設定：先讀環境變數（含預設值），再讓命令列旗標覆寫。
// 只在程式啟動時呼叫一次，結果以值的方式交給 main 組裝各模組。

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config 為程式啟動所需的全部設定。
//   - LogLevel：zap 等級字串（debug、info、warn、error）。
//   - FirstName／LastName：操作選單的使用者姓名。
//   - InitialAccounts：啟動時替使用者預先開立的帳戶數，不得為負。
type Config struct {
	LogLevel        string `env:"BANK_LOG_LEVEL" env-default:"info"`
	FirstName       string `env:"BANK_USER_FIRST_NAME" env-default:"Jane"`
	LastName        string `env:"BANK_USER_LAST_NAME" env-default:"Doe"`
	InitialAccounts int    `env:"BANK_INITIAL_ACCOUNTS" env-default:"2"`
}

// Load 讀取設定：環境變數 → 旗標覆寫 → 檢核。args 通常為 os.Args[1:]。
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	fs := flag.NewFlagSet("bank", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.FirstName, "first", cfg.FirstName, "first name of the console user")
	fs.StringVar(&cfg.LastName, "last", cfg.LastName, "last name of the console user")
	fs.IntVar(&cfg.InitialAccounts, "n", cfg.InitialAccounts, "number of accounts opened at startup")

	if err = fs.Parse(args); err != nil {
		return nil, fmt.Errorf("couldn't parse flags: %w", err)
	}
	if cfg.InitialAccounts < 0 {
		return nil, errors.New("initial accounts must not be negative")
	}

	return cfg, nil
}
