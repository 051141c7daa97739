package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
)

// LogMode selects how log-file names are derived.
type LogMode string

const (
	// LogDate names log files after the current date: log_<YYYY-MM-DD>.txt.
	LogDate LogMode = "date"
	// LogIncrement numbers log files: log_<N>.txt, one above the highest
	// existing sibling.
	LogIncrement LogMode = "increment"
)

var logNumberPattern = regexp.MustCompile(`^log_(\d+)\.txt$`)

// LogName derives the file name for a new log file in dir. Increment
// numbering starts at 1 when no numbered sibling exists.
func LogName(fsys filesystem.ReadFS, dir string, mode LogMode, now time.Time) (string, error) {
	switch mode {
	case LogDate:
		return fmt.Sprintf("log_%s.txt", now.Format("2006-01-02")), nil
	case LogIncrement:
		next := 1
		entries, err := fsys.ReadDir(dir)
		if err == nil {
			for _, e := range entries {
				m := logNumberPattern.FindStringSubmatch(e.Name())
				if m == nil {
					continue
				}
				if n, err := strconv.Atoi(m[1]); err == nil && n >= next {
					next = n + 1
				}
			}
		}
		return fmt.Sprintf("log_%d.txt", next), nil
	}
	return "", &core.InvalidModeError{
		Mode:    string(mode),
		Allowed: []string{string(LogDate), string(LogIncrement)},
	}
}
