package model

import "time"

// Owned holds the identity columns every per-user record carries.
type Owned struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (o *Owned) Owner() *Owned { return o }

// Record is implemented by pointers to every entity embedding Owned.
type Record interface {
	Owner() *Owned
}

// RecordPtr constrains generic stores to *T where *T is a Record.
type RecordPtr[T any] interface {
	*T
	Record
}
