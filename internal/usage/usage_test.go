package usage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTotalsMissingFile(t *testing.T) {
	_, err := Totals("/nonexistent/trace", []string{"sshmgmt3x001"})
	if !errors.Is(err, ErrTraceFile) {
		t.Errorf("Totals error = %v, want ErrTraceFile", err)
	}
}

func TestTotals(t *testing.T) {
	trace := "sshd: sshmgmt3x001@pts/0/12345/sshmgmt3x001\t10.5\t2.5\n" +
		"sshd: sshmgmt3x001@pts/1/12346/sshmgmt3x001\t1.0\t1.0\n" +
		"sshd: sshmgmt3x002@pts/2/12347/sshmgmt3x002\t7.25\t0.75\n" +
		"unknown\t99\t99\n"
	path := writeTrace(t, trace)

	totals, err := Totals(path, []string{"sshmgmt3x001", "sshmgmt3x002", "sshmgmt3x003"})
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}

	if got := totals["sshmgmt3x001"]; got != 15.0 {
		t.Errorf("sshmgmt3x001 total = %v, want 15", got)
	}
	if got := totals["sshmgmt3x002"]; got != 8.0 {
		t.Errorf("sshmgmt3x002 total = %v, want 8", got)
	}
	// Users missing from the trace report zero rather than being absent.
	if got, ok := totals["sshmgmt3x003"]; !ok || got != 0 {
		t.Errorf("sshmgmt3x003 total = %v (present %v), want 0", got, ok)
	}
}

func TestTotalsUnparsableTokens(t *testing.T) {
	trace := "sshd: sshmgmt3x001@pts/0/12345/sshmgmt3x001\tgarbage\t4.0\n"
	path := writeTrace(t, trace)

	totals, err := Totals(path, []string{"sshmgmt3x001"})
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got := totals["sshmgmt3x001"]; got != 4.0 {
		t.Errorf("total = %v, want 4 (garbage token contributes 0)", got)
	}
}
