package database

import (
	"sync"
	"sync/atomic"
)

// State 数据库连接状态，由启动流程写入、就绪中间件读取
type State struct {
	ready   atomic.Bool
	mu      sync.RWMutex
	driver  string
	lastErr error
}

// NewState 创建连接状态
func NewState(driver string) *State {
	return &State{driver: driver}
}

// MarkReady 标记连接可用
func (s *State) MarkReady() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
	s.ready.Store(true)
}

// MarkDown 标记连接不可用
func (s *State) MarkDown(err error) {
	if s == nil {
		return
	}
	s.ready.Store(false)
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Ready 当前是否可用
func (s *State) Ready() bool {
	if s == nil {
		return false
	}
	return s.ready.Load()
}

// LastError 最近一次连接失败原因
func (s *State) LastError() error {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Driver 数据库驱动名
func (s *State) Driver() string {
	if s == nil {
		return ""
	}
	return s.driver
}

// Status 健康检查展示用
func (s *State) Status() string {
	if s.Ready() {
		return "connected"
	}
	return "disconnected"
}
