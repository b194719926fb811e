// Package console prints operator-facing lines in the form
// "[dd.mm.yyyy, hh:mm:ss] message". Timestamps are cyan and errors red
// when the output is a terminal.
package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
)

// TimestampLayout renders as [dd.mm.yyyy, hh:mm:ss].
const TimestampLayout = "[02.01.2006, 15:04:05]"

const logo = `
██████╗ ██╗   ██╗██████╗ ███████╗ █████╗ ██████╗ ███████╗██████╗ 
██╔══██╗╚██╗ ██╔╝██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔════╝██╔══██╗
██████╔╝ ╚████╔╝ ██████╔╝█████╗  ███████║██║  ██║█████╗  ██████╔╝
██╔═══╝   ╚██╔╝  ██╔══██╗██╔══╝  ██╔══██║██║  ██║██╔══╝  ██╔══██╗
██║        ██║   ██║  ██║███████╗██║  ██║██████╔╝███████╗██║  ██║
╚═╝        ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝ ╚══════╝╚═╝  ╚═╝
`

type Console struct {
	out   io.Writer
	clock clock.Clock
	stamp *color.Color
	fail  *color.Color
	brand *color.Color
	mu    sync.Mutex
}

// New creates a Console writing to out. colored=false strips all ANSI codes.
func New(out io.Writer, clk clock.Clock, colored bool) *Console {
	c := &Console{
		out:   out,
		clock: clk,
		stamp: color.New(color.FgCyan),
		fail:  color.New(color.FgRed),
		brand: color.New(color.FgGreen),
	}
	for _, col := range []*color.Color{c.stamp, c.fail, c.brand} {
		if colored {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// Timestamp formats t the way every console line starts.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Info prints a timestamped line.
func (c *Console) Info(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", c.stamp.Sprint(Timestamp(c.clock.Now())), fmt.Sprintf(format, args...))
}

// Error prints a timestamped line with the message in red.
func (c *Console) Error(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", c.stamp.Sprint(Timestamp(c.clock.Now())), c.fail.Sprint(fmt.Sprintf(format, args...)))
}

// Println prints an untimestamped line (menus, hints).
func (c *Console) Println(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Banner prints the start-up logo.
func (c *Console) Banner() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.brand.Sprint(logo))
}

// Writer exposes the underlying writer, e.g. for interactive prompts.
func (c *Console) Writer() io.Writer {
	return c.out
}
