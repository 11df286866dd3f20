// Package spool hands validated call files to the Asterisk spool
// daemon: write to a private temporary file, apply ownership and
// schedule metadata, then atomically rename into the spool directory.
package spool

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/callspool/callspool/internal/callfile"
	domainerrors "github.com/callspool/callspool/internal/platform/errors"
)

const tracerName = "github.com/callspool/callspool/internal/spool"

// Spooler performs the filesystem handoff for call files. The zero
// value is usable; tests inject the metadata operations.
type Spooler struct {
	// TempDir is where temporary call files are staged before the final
	// rename. It must share a filesystem with the spool directory for
	// the rename to be atomic. Empty means the system temp directory.
	TempDir string
	// Accounts resolves owning-user names. Nil means the local user
	// database.
	Accounts AccountResolver
	// Logger receives the one swallowed failure (schedule timestamp).
	// Nil means the standard logger.
	Logger *log.Logger

	chown   func(name string, uid, gid int) error
	chtimes func(name string, atime, mtime time.Time) error
	rename  func(oldpath, newpath string) error
}

// Submit realizes cf as a file inside its spool directory and returns
// the final spooled path. A zero schedule means Asterisk places the
// call as soon as it observes the file; otherwise the file's access and
// modification times carry the schedule.
//
// Each submission writes its own temporary file and becomes visible to
// Asterisk through a single rename, so concurrent submissions into the
// same spool directory need no locking. Failed submissions never leave
// a temporary file behind.
func (s *Spooler) Submit(ctx context.Context, cf *callfile.CallFile, schedule time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "spool.Submit")
	defer span.End()

	if cf == nil || cf.Action == nil {
		return "", domainerrors.New(domainerrors.CodeNoAction, "submission carries no action")
	}
	content, err := cf.Render()
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.TempDir, "callspool-*.call")
	if err != nil {
		return "", fmt.Errorf("create temp call file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write temp call file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close temp call file: %w", err)
	}

	if cf.User != "" {
		uid, gid, err := s.accounts().Lookup(cf.User)
		if err != nil {
			_ = os.Remove(tmpName)
			return "", domainerrors.Wrap(domainerrors.CodeAccountUnknown,
				fmt.Sprintf("account %q not found", cf.User), err)
		}
		if err := s.chownFn()(tmpName, uid, gid); err != nil {
			_ = os.Remove(tmpName)
			return "", domainerrors.Wrap(domainerrors.CodeOwnershipChange,
				fmt.Sprintf("chown call file to %q", cf.User), err)
		}
	}

	if !schedule.IsZero() {
		// Asterisk reads the schedule from the file's atime/mtime.
		// Losing the timestamp only means the call runs immediately, so
		// the submission proceeds on failure.
		if err := s.chtimesFn()(tmpName, schedule, schedule); err != nil {
			s.logf("schedule timestamp not applied, call will run immediately: %v", err)
		}
	}

	dest := filepath.Join(cf.SpoolDirectory(), filepath.Base(tmpName))
	if err := s.renameFn()(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return "", domainerrors.Wrap(domainerrors.CodeSpoolPlacement,
			fmt.Sprintf("move call file into %s", cf.SpoolDirectory()), err)
	}

	span.SetAttributes(attribute.String("callspool.spooled_path", dest))
	return dest, nil
}

func (s *Spooler) accounts() AccountResolver {
	if s.Accounts != nil {
		return s.Accounts
	}
	return SystemAccounts{}
}

func (s *Spooler) chownFn() func(string, int, int) error {
	if s.chown != nil {
		return s.chown
	}
	return os.Chown
}

func (s *Spooler) chtimesFn() func(string, time.Time, time.Time) error {
	if s.chtimes != nil {
		return s.chtimes
	}
	return os.Chtimes
}

func (s *Spooler) renameFn() func(string, string) error {
	if s.rename != nil {
		return s.rename
	}
	return os.Rename
}

func (s *Spooler) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
