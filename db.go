package todo

import "context"

type Database interface {
	IsOpen() bool
	Initialize(context.Context) error
	Close() error
}
