package linprog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// WriteResultFile persists a driver result as
// <driver>_Result_<timestamp>.txt in dir: the verdict, the objective, the
// variable values sorted by label, the note and the full step log. The
// created path is returned.
func WriteResultFile(dir, driver string, res *Result) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s result\n", driver)
	fmt.Fprintf(&sb, "Status: %s\n", res.Solution.Status)
	fmt.Fprintf(&sb, "Z = %.6f\n\n", res.Solution.Z)
	for _, vv := range res.Solution.Sorted() {
		fmt.Fprintf(&sb, "%-8s = %.6f\n", vv.Label, vv.Value)
	}
	if res.Note != "" {
		fmt.Fprintf(&sb, "\nNote: %s\n", res.Note)
	}
	sb.WriteString("\nSteps:\n")
	for _, line := range res.Trace.Lines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	name := fmt.Sprintf("%s_Result_%s.txt", driver, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing result file %s", path)
	}
	return path, nil
}

// SensitivityLog is the append-only log of post-optimality edits.
type SensitivityLog struct {
	path string
}

const logDelim = "#------------------------------------------------------------------------------\n"

// NewSensitivityLog returns a log writing to sensitivity_analysis_log.txt
// in dir.
func NewSensitivityLog(dir string) *SensitivityLog {
	return &SensitivityLog{path: filepath.Join(dir, "sensitivity_analysis_log.txt")}
}

// Path returns the file the log appends to.
func (l *SensitivityLog) Path() string { return l.path }

// Append writes one timestamped entry followed by a section delimiter.
func (l *SensitivityLog) Append(entry string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening %s", l.path)
	}
	defer f.Close()

	stamp := time.Now().Format("2006-01-02 15:04:05")
	if _, err := fmt.Fprintf(f, "[%s] %s\n%s", stamp, entry, logDelim); err != nil {
		return errors.Wrapf(err, "appending to %s", l.path)
	}
	return nil
}
