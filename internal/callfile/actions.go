package callfile

import (
	"fmt"
	"strings"
)

// Application connects the answered call to a single dialplan
// application, such as Playback or Queue.
type Application struct {
	Application string
	Data        string
}

// Valid reports whether the action names an application.
func (a *Application) Valid() bool {
	return strings.TrimSpace(a.Application) != ""
}

// Directives serializes the action into ordered directive lines. The
// Data line is omitted when the application takes no arguments.
func (a *Application) Directives() []string {
	lines := []string{"Application: " + a.Application}
	if a.Data != "" {
		lines = append(lines, "Data: "+a.Data)
	}
	return lines
}

// Context drops the answered call into a dialplan context at the given
// extension and priority.
type Context struct {
	Context   string
	Extension string
	Priority  int
}

// Valid reports whether all three dialplan coordinates are set.
// Asterisk priorities start at 1.
func (c *Context) Valid() bool {
	if strings.TrimSpace(c.Context) == "" || strings.TrimSpace(c.Extension) == "" {
		return false
	}
	return c.Priority >= 1
}

// Directives serializes the action into ordered directive lines.
func (c *Context) Directives() []string {
	return []string{
		"Context: " + c.Context,
		"Extension: " + c.Extension,
		fmt.Sprintf("Priority: %d", c.Priority),
	}
}
