package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTempJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() {
		if err := j.Close(); err != nil {
			t.Fatalf("close journal: %v", err)
		}
	})
	return j
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestRecordRecentRoundTrip(t *testing.T) {
	t.Parallel()

	j := openTempJournal(t)
	scheduled := time.Date(2026, time.August, 25, 9, 30, 0, 0, time.UTC)
	stored, err := j.Record(context.Background(), Submission{
		SpoolPath:   "/var/spool/asterisk/outgoing/callspool-1.call",
		Channel:     "SIP/1234",
		Archive:     true,
		ScheduledAt: &scheduled,
	})
	if err != nil {
		t.Fatalf("record submission: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("expected generated id")
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be filled")
	}

	subs, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent submissions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(subs))
	}
	got := subs[0]
	if got.ID != stored.ID {
		t.Fatalf("id = %q, want %q", got.ID, stored.ID)
	}
	if got.Channel != "SIP/1234" {
		t.Fatalf("channel = %q, want SIP/1234", got.Channel)
	}
	if !got.Archive {
		t.Fatal("expected archive flag to round-trip")
	}
	if got.ScheduledAt == nil || !got.ScheduledAt.Equal(scheduled) {
		t.Fatalf("scheduled_at = %v, want %v", got.ScheduledAt, scheduled)
	}
}

func TestRecordRequiresSpoolPath(t *testing.T) {
	t.Parallel()

	j := openTempJournal(t)
	if _, err := j.Record(context.Background(), Submission{Channel: "SIP/1"}); err == nil {
		t.Fatal("expected error for missing spool path")
	}
}

func TestRecentOrdersNewestFirstAndLimits(t *testing.T) {
	t.Parallel()

	j := openTempJournal(t)
	base := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"sub-1", "sub-2", "sub-3"} {
		if _, err := j.Record(context.Background(), Submission{
			ID:        id,
			SpoolPath: "/var/spool/asterisk/outgoing/" + id + ".call",
			Channel:   "SIP/1234",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	subs, err := j.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("recent submissions: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	if subs[0].ID != "sub-3" || subs[1].ID != "sub-2" {
		t.Fatalf("expected newest first, got %q then %q", subs[0].ID, subs[1].ID)
	}
}

func TestRecentRejectsNonPositiveLimit(t *testing.T) {
	t.Parallel()

	j := openTempJournal(t)
	if _, err := j.Recent(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero limit")
	}
}
