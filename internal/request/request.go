// Package request loads spool submissions from YAML documents, so a
// full call file can be described declaratively instead of through
// flags.
package request

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/callspool/callspool/internal/callfile"
)

// Document is the YAML shape of a submission request. Exactly one of
// Application or Context must be present.
type Document struct {
	Call struct {
		Channel    string            `yaml:"channel"`
		CallerID   string            `yaml:"caller_id"`
		Variables  map[string]string `yaml:"variables"`
		Account    string            `yaml:"account"`
		WaitTime   int               `yaml:"wait_time"`
		RetryTime  int               `yaml:"retry_time"`
		MaxRetries int               `yaml:"max_retries"`
	} `yaml:"call"`
	Application *struct {
		Name string `yaml:"name"`
		Data string `yaml:"data"`
	} `yaml:"application"`
	Context *struct {
		Context   string `yaml:"context"`
		Extension string `yaml:"extension"`
		Priority  int    `yaml:"priority"`
	} `yaml:"context"`
	Archive  bool   `yaml:"archive"`
	User     string `yaml:"user"`
	SpoolDir string `yaml:"spool_dir"`
	// Schedule is an RFC 3339 timestamp. Malformed values are rejected
	// at load time, never deferred to the filesystem handoff.
	Schedule string `yaml:"schedule"`
}

// Load reads a YAML request file and converts it into a call file and
// schedule time. A zero schedule time means "place the call
// immediately".
func Load(path string) (*callfile.CallFile, time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read request file: %w", err)
	}
	return Parse(data)
}

// Parse converts a YAML request document into a call file and schedule
// time.
func Parse(data []byte) (*callfile.CallFile, time.Time, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("parse request document: %w", err)
	}

	if doc.Application == nil && doc.Context == nil {
		return nil, time.Time{}, fmt.Errorf("request needs an application or context action")
	}
	if doc.Application != nil && doc.Context != nil {
		return nil, time.Time{}, fmt.Errorf("request must name exactly one of application or context")
	}

	var action callfile.Source
	if doc.Application != nil {
		action = &callfile.Application{
			Application: doc.Application.Name,
			Data:        doc.Application.Data,
		}
	} else {
		action = &callfile.Context{
			Context:   doc.Context.Context,
			Extension: doc.Context.Extension,
			Priority:  doc.Context.Priority,
		}
	}

	var schedule time.Time
	if doc.Schedule != "" {
		parsed, err := time.Parse(time.RFC3339, doc.Schedule)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("parse schedule %q: %w", doc.Schedule, err)
		}
		schedule = parsed
	}

	cf := &callfile.CallFile{
		Call: &callfile.Call{
			Channel:    doc.Call.Channel,
			CallerID:   doc.Call.CallerID,
			Variables:  doc.Call.Variables,
			Account:    doc.Call.Account,
			WaitTime:   doc.Call.WaitTime,
			RetryTime:  doc.Call.RetryTime,
			MaxRetries: doc.Call.MaxRetries,
		},
		Action:   action,
		Archive:  doc.Archive,
		User:     doc.User,
		SpoolDir: doc.SpoolDir,
	}
	return cf, schedule, nil
}
