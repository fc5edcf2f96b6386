package models

import (
	"sync"

	"gorm.io/gorm"
)

// watcher fans out table-level change notifications to subscribers.
//
// Notifications are emitted by the notifyCallback registered on the gorm
// connection: any successful create, update or delete on a watched table
// invokes every subscribed function with the table name. Each callback
// runs on its own goroutine so that subscribers can query the database
// without blocking the transaction that triggered the change.
type watcher struct {
	mu   sync.Mutex
	next uint64
	subs map[string]map[uint64]func(table string)
}

var changeWatcher = &watcher{
	subs: make(map[string]map[uint64]func(table string)),
}

// Watch registers fn for changes on the given tables. The returned
// function removes the registration for all of them and can be called
// multiple times.
func Watch(tables []string, fn func(table string)) func() {
	changeWatcher.mu.Lock()
	defer changeWatcher.mu.Unlock()

	changeWatcher.next++
	id := changeWatcher.next

	for _, table := range tables {
		if changeWatcher.subs[table] == nil {
			changeWatcher.subs[table] = make(map[uint64]func(table string))
		}
		changeWatcher.subs[table][id] = fn
	}

	return func() {
		changeWatcher.mu.Lock()
		defer changeWatcher.mu.Unlock()

		for _, table := range tables {
			delete(changeWatcher.subs[table], id)
		}
	}
}

// notifyCallback is registered on the gorm connection in Connect.
func notifyCallback(db *gorm.DB) {
	if db.Error != nil || db.Statement == nil || db.Statement.Table == "" {
		return
	}

	table := db.Statement.Table

	changeWatcher.mu.Lock()
	fns := make([]func(string), 0, len(changeWatcher.subs[table]))
	for _, fn := range changeWatcher.subs[table] {
		fns = append(fns, fn)
	}
	changeWatcher.mu.Unlock()

	// The write may still hold an open transaction, and with a single
	// sqlite connection a subscriber reading synchronously would wait
	// for it forever. Detaching the callbacks avoids that.
	for _, fn := range fns {
		go fn(table)
	}
}
