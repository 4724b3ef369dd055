package sql

import "context"

type Database interface {
	Open() error
	Close()
	Ping(context.Context) error
	Command(string) error
}
