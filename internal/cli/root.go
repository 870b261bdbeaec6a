// Package cli holds the habitstats subcommands. Each command prints one
// report or mutation result as indented JSON.
package cli

import (
	"encoding/json"
	"errors"
	"io"

	"habitTrackerAPI/internal/analytics"
	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/sqlitestore"
)

var ErrReadOnly = errors.New("command needs a local SQLite database")

type Context struct {
	Engine  *analytics.Engine
	Request analytics.Request
	// Local is nil when reports are read from Postgres.
	Local *sqlitestore.Store
	Out   io.Writer
}

func (c *Context) local() (*sqlitestore.Store, error) {
	if c.Local == nil {
		return nil, ErrReadOnly
	}
	return c.Local, nil
}

// today is the owner's logical day at the reference instant.
func (c *Context) today() (string, error) {
	r, err := calendar.New(c.Request.Timezone)
	if err != nil {
		return "", err
	}
	return r.Today(c.Request.Now), nil
}

func (c *Context) print(v any) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
