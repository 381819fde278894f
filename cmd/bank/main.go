// cmd/bank/main.go

// 本程式提供文字選單操作的銀行帳本：開戶、存提款、轉帳、鎖定與交易紀錄查詢。
// 此檔案負責讀取設定、初始化 logger，組裝 bank、user、console 模組並啟動選單迴圈。
// 所有狀態只存在記憶體中，程式結束即消失。

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"banksystem/internal/bank"
	"banksystem/internal/config"
	"banksystem/internal/console"
	"banksystem/internal/user"
	"banksystem/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	if err = logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("error starting logger: %v", err)
	}
	defer func() { _ = logger.Log.Sync() }()

	// 初始化銀行核心模組
	store := bank.NewStore()
	b := bank.NewBank(store)

	// 註冊操作選單的使用者並預先開立帳戶
	users := user.NewRegistry()
	u := users.Register(cfg.FirstName, cfg.LastName)
	for i := 0; i < cfg.InitialAccounts; i++ {
		b.OpenAccount(u.ID)
	}
	logger.Log.Info("bank ready",
		logger.Int("user_id", u.ID), logger.String("user", u.FullName()), logger.Int("accounts", store.Len()))

	// SIGINT/SIGTERM 會取消 ctx，讓選單迴圈安全結束
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = console.New(b, users, u.ID, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Log.Error("console stopped", logger.Error(err))
		return
	}
	logger.Log.Info("shutdown complete")
}
