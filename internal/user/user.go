// internal/user/user.go

// Package user 保存使用者基本資料（姓名），與帳戶本身無關；
// 帳戶只透過 user id 連結到這裡。
package user

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrNotFound 代表使用者不存在。
var ErrNotFound = errors.New("user not found")

// User 使用者模型
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName 回傳「名 姓」，缺少的部分會被略過。
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Registry 為 in-memory 使用者資料表，可安全並行使用。
type Registry struct {
	next  int64
	mu    sync.RWMutex
	users map[int]User
}

func NewRegistry() *Registry {
	return &Registry{users: make(map[int]User)}
}

// Register 建立使用者並配發 id（從 0 開始遞增）。
func (r *Registry) Register(first, last string) User {
	id := int(atomic.AddInt64(&r.next, 1) - 1)
	u := User{ID: id, FirstName: first, LastName: last}

	r.mu.Lock()
	r.users[id] = u
	r.mu.Unlock()
	return u
}

// Get 依 id 取得使用者（值拷貝）。
func (r *Registry) Get(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// Rename 更新使用者姓名。
func (r *Registry) Rename(id int, first, last string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.FirstName, u.LastName = first, last
	r.users[id] = u
	return nil
}
