package arango

import (
	"context"
	"net/http"
)

// TransactionCollections declares the collections a transaction touches.
type TransactionCollections struct {
	Read  []string `json:"read,omitempty"`
	Write []string `json:"write,omitempty"`
}

// Transaction is a JavaScript action executed atomically on the server.
type Transaction struct {
	db *Database

	action      string
	collections TransactionCollections
	waitForSync bool
	lockTimeout int
}

type transactionRequest struct {
	Action      string                 `json:"action"`
	Collections TransactionCollections `json:"collections"`
	WaitForSync bool                   `json:"waitForSync"`
	LockTimeout int                    `json:"lockTimeout,omitempty"`
	Params      any                    `json:"params,omitempty"`
}

func newTransaction(db *Database, action string, collections TransactionCollections) *Transaction {
	return &Transaction{
		db:          db,
		action:      action,
		collections: collections,
	}
}

func (t *Transaction) ReadCollections() []string {
	return t.collections.Read
}

func (t *Transaction) WriteCollections() []string {
	return t.collections.Write
}

func (t *Transaction) WaitForSync() bool {
	return t.waitForSync
}

func (t *Transaction) SetWaitForSync(wait bool) {
	t.waitForSync = wait
}

// LockTimeout is in seconds, zero leaves the server default.
func (t *Transaction) LockTimeout() int {
	return t.lockTimeout
}

func (t *Transaction) SetLockTimeout(seconds int) {
	t.lockTimeout = seconds
}

// Execute runs the action with params (nil for none) and returns its result.
func (t *Transaction) Execute(ctx context.Context, params any) (any, error) {
	body := &transactionRequest{
		Action:      t.action,
		Collections: t.collections,
		WaitForSync: t.waitForSync,
		LockTimeout: t.lockTimeout,
		Params:      params,
	}

	var resp struct {
		Result any `json:"result"`
	}
	if err := t.db.conn.SendRequest(ctx, http.MethodPost, "transaction", body, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}
