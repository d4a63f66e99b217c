package create_event

import "sync"

// calendarLocks сериализует проверку занятости и запись по одному календарю
// внутри процесса. Межпроцессные гонки закрывает сериализуемая транзакция.
type calendarLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCalendarLocks() *calendarLocks {
	return &calendarLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock блокирует календарь и возвращает функцию разблокировки
func (c *calendarLocks) Lock(calendarID string) func() {
	c.mu.Lock()
	lock, ok := c.locks[calendarID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[calendarID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
