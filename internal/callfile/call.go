package callfile

import (
	"fmt"
	"sort"
	"strings"
)

// Call describes the target of a call file: the channel Asterisk should
// bring up and the dialing behavior to apply while doing so.
type Call struct {
	// Channel is the Asterisk channel to originate, e.g. "SIP/1234".
	Channel string
	// CallerID is presented to the called party when set.
	CallerID string
	// Variables become Set: key=value directives on the new channel.
	Variables map[string]string
	// Account tags the call for CDR accounting.
	Account string
	// WaitTime is how many seconds to wait for an answer before giving up.
	WaitTime int
	// RetryTime is the delay in seconds between retry attempts.
	RetryTime int
	// MaxRetries is how many times to retry a failed origination.
	MaxRetries int
}

// Valid reports whether the call target can be serialized. A call needs
// a channel, and its numeric dialing knobs must be non-negative.
func (c *Call) Valid() bool {
	if strings.TrimSpace(c.Channel) == "" {
		return false
	}
	return c.WaitTime >= 0 && c.RetryTime >= 0 && c.MaxRetries >= 0
}

// Directives serializes the call target into ordered directive lines.
// Channel variables are emitted in sorted key order so repeated builds
// of the same call produce identical files.
func (c *Call) Directives() []string {
	lines := []string{"Channel: " + c.Channel}
	if c.CallerID != "" {
		lines = append(lines, "Callerid: "+c.CallerID)
	}
	keys := make([]string, 0, len(c.Variables))
	for key := range c.Variables {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("Set: %s=%s", key, c.Variables[key]))
	}
	if c.Account != "" {
		lines = append(lines, "Account: "+c.Account)
	}
	if c.WaitTime > 0 {
		lines = append(lines, fmt.Sprintf("WaitTime: %d", c.WaitTime))
	}
	if c.RetryTime > 0 {
		lines = append(lines, fmt.Sprintf("RetryTime: %d", c.RetryTime))
	}
	if c.MaxRetries > 0 {
		lines = append(lines, fmt.Sprintf("Maxretries: %d", c.MaxRetries))
	}
	return lines
}
