package db

import "errors"

// ErrKeyNotFound is returned when a document key does not exist.
var ErrKeyNotFound = errors.New("db: key not found")

// Command names carried in Error.Op.
const (
	OpPing    = "PING"
	OpHSet    = "HSET"
	OpHGetAll = "HGETALL"
	OpScan    = "SCAN"
	OpDel     = "DEL"
	OpGet     = "GET"
	OpSet     = "SET"
	OpIncrBy  = "INCRBY"
	OpExpire  = "EXPIRE"
)

// Error reports which command failed on which key.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
