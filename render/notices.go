package render

import (
	"sync"
	"time"

	"campus-navigator/navigation"
)

// DefaultNoticeCapacity 提示队列容量
const DefaultNoticeCapacity = 20

// TimedNotice 带时间的提示
type TimedNotice struct {
	navigation.Notice
	At time.Time `json:"at"`
}

// NoticeLog 提示队列 (toast)，超出容量时丢弃最旧的
type NoticeLog struct {
	mu       sync.Mutex
	capacity int
	notices  []TimedNotice
}

// NewNoticeLog 创建提示队列
func NewNoticeLog(capacity int) *NoticeLog {
	if capacity <= 0 {
		capacity = DefaultNoticeCapacity
	}
	return &NoticeLog{capacity: capacity}
}

// Notify 实现 navigation.Notifier
func (l *NoticeLog) Notify(n navigation.Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.notices = append(l.notices, TimedNotice{Notice: n, At: time.Now()})
	if over := len(l.notices) - l.capacity; over > 0 {
		l.notices = append([]TimedNotice(nil), l.notices[over:]...)
	}
}

// Drain 取出并清空所有提示
func (l *NoticeLog) Drain() []TimedNotice {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.notices
	l.notices = nil
	if out == nil {
		out = []TimedNotice{}
	}
	return out
}
