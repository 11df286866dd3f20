// Package submit parses callspool flags and runs one spool submission.
package submit

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/callspool/callspool/internal/callfile"
	"github.com/callspool/callspool/internal/journal"
	entrypoint "github.com/callspool/callspool/internal/platform/cmd"
	"github.com/callspool/callspool/internal/request"
	"github.com/callspool/callspool/internal/spool"
)

// Config holds submit command configuration. Environment values are
// loaded first; flags override them.
type Config struct {
	SpoolDir string `env:"CALLSPOOL_SPOOL_DIR" envDefault:"/var/spool/asterisk/outgoing"`
	TempDir  string `env:"CALLSPOOL_TEMP_DIR"`
	Journal  string `env:"CALLSPOOL_JOURNAL"`

	File        string
	Channel     string
	CallerID    string
	Application string
	Data        string
	CallContext string
	Extension   string
	Priority    int
	Archive     bool
	User        string
	Schedule    string
	History     int
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "directory watched by the Asterisk spool daemon")
	fs.StringVar(&cfg.TempDir, "temp-dir", cfg.TempDir, "staging directory for call files; must share a filesystem with the spool directory")
	fs.StringVar(&cfg.Journal, "journal", cfg.Journal, "path to the submission journal database")
	fs.StringVar(&cfg.File, "file", "", "YAML request file describing the submission")
	fs.StringVar(&cfg.Channel, "channel", "", "channel to call, e.g. SIP/1234")
	fs.StringVar(&cfg.CallerID, "callerid", "", "caller id to present")
	fs.StringVar(&cfg.Application, "application", "", "dialplan application to run on answer")
	fs.StringVar(&cfg.Data, "data", "", "arguments for the dialplan application")
	fs.StringVar(&cfg.CallContext, "callcontext", "", "dialplan context to enter on answer")
	fs.StringVar(&cfg.Extension, "extension", "", "dialplan extension within the context")
	fs.IntVar(&cfg.Priority, "priority", 1, "dialplan priority within the extension")
	fs.BoolVar(&cfg.Archive, "archive", false, "ask Asterisk to archive the call file after processing")
	fs.StringVar(&cfg.User, "user", "", "system account the spooled file should be owned by")
	fs.StringVar(&cfg.Schedule, "schedule", "", "RFC 3339 time to place the call; empty means immediately")
	fs.IntVar(&cfg.History, "history", 0, "print the N most recent journal entries and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the submit command.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSubmit, func(ctx context.Context) error {
		return run(ctx, cfg, os.Stdout)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.History > 0 {
		return printHistory(ctx, cfg, out)
	}

	cf, schedule, err := buildRequest(cfg)
	if err != nil {
		return err
	}

	spooler := &spool.Spooler{TempDir: cfg.TempDir}
	path, err := spooler.Submit(ctx, cf, schedule)
	if err != nil {
		return err
	}
	log.Printf("spooled %s", path)

	if cfg.Journal != "" {
		if err := recordSubmission(ctx, cfg.Journal, cf, path, schedule); err != nil {
			return fmt.Errorf("journal submission: %w", err)
		}
	}
	fmt.Fprintln(out, path)
	return nil
}

func buildRequest(cfg Config) (*callfile.CallFile, time.Time, error) {
	if cfg.File != "" {
		cf, schedule, err := request.Load(cfg.File)
		if err != nil {
			return nil, time.Time{}, err
		}
		if cf.SpoolDir == "" {
			cf.SpoolDir = cfg.SpoolDir
		}
		return cf, schedule, nil
	}

	if cfg.Application != "" && cfg.CallContext != "" {
		return nil, time.Time{}, fmt.Errorf("use -application or -callcontext, not both")
	}
	var action callfile.Source
	switch {
	case cfg.Application != "":
		action = &callfile.Application{Application: cfg.Application, Data: cfg.Data}
	case cfg.CallContext != "":
		action = &callfile.Context{Context: cfg.CallContext, Extension: cfg.Extension, Priority: cfg.Priority}
	default:
		return nil, time.Time{}, fmt.Errorf("an action is required: -application or -callcontext")
	}

	var schedule time.Time
	if cfg.Schedule != "" {
		parsed, err := time.Parse(time.RFC3339, cfg.Schedule)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("parse schedule %q: %w", cfg.Schedule, err)
		}
		schedule = parsed
	}

	cf := &callfile.CallFile{
		Call:     &callfile.Call{Channel: cfg.Channel, CallerID: cfg.CallerID},
		Action:   action,
		Archive:  cfg.Archive,
		User:     cfg.User,
		SpoolDir: cfg.SpoolDir,
	}
	return cf, schedule, nil
}

func recordSubmission(ctx context.Context, journalPath string, cf *callfile.CallFile, spooledPath string, schedule time.Time) error {
	j, err := journal.Open(journalPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := j.Close(); err != nil {
			log.Printf("close journal: %v", err)
		}
	}()

	sub := journal.Submission{
		SpoolPath: spooledPath,
		Archive:   cf.Archive,
	}
	if call, ok := cf.Call.(*callfile.Call); ok {
		sub.Channel = call.Channel
	}
	if !schedule.IsZero() {
		sub.ScheduledAt = &schedule
	}
	_, err = j.Record(ctx, sub)
	return err
}

func printHistory(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.Journal == "" {
		return fmt.Errorf("history requires a journal path")
	}
	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return err
	}
	defer func() {
		if err := j.Close(); err != nil {
			log.Printf("close journal: %v", err)
		}
	}()

	subs, err := j.Recent(ctx, cfg.History)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		scheduled := "immediate"
		if sub.ScheduledAt != nil {
			scheduled = sub.ScheduledAt.Format(time.RFC3339)
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
			sub.CreatedAt.Format(time.RFC3339), sub.Channel, scheduled, sub.SpoolPath)
	}
	return nil
}
