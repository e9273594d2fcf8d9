// Package cli is the interactive front end of the vaccine scheduler.
//
// It reads one command per line, dispatches it to the services package and
// prints a one-line outcome. Business-rule failures never end the session;
// only "quit" or end of input does. At most one identity is logged in at a
// time.
//
// The REPL is started via App.Run(ctx, in), which blocks until the user quits.
// See App and runREPL for details.
package cli
