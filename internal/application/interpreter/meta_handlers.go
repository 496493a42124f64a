package interpreter

import (
	"fmt"
	"strings"

	"github.com/doeshing/termsim/internal/domain"
)

const noHistoryMessage = "No commands in history"

// helpText is maintained by hand; keep it in step with dispatchTable.
const helpText = `Available Commands:
  ls [path]        - List directory contents
  cd [path]        - Change directory
  pwd              - Print working directory
  mkdir <dir>      - Create directory
  rmdir <dir>      - Remove empty directory
  rm <file/dir>    - Remove file or directory
  touch <file>     - Create empty file or update timestamp
  cat <file>       - Display file contents
  echo <text>      - Display text
  mv <src> <dst>   - Move/rename file
  cp <src> <dst>   - Copy file
  ps               - List processes
  cpu              - Show CPU information
  mem              - Show memory information
  sysinfo          - Show system information
  history          - Show command history
  help             - Show this help
  clear            - Clear screen
  exit             - Exit terminal`

func (in *Interpreter) showHistory([]string) (domain.Result, error) {
	if len(in.history) == 0 {
		return domain.OK(noHistoryMessage), nil
	}

	recent := in.RecentHistory(in.historyLimit)
	lines := make([]string, 0, len(recent))
	for i, entry := range recent {
		lines = append(lines, fmt.Sprintf("%3d %s %s",
			i+1,
			entry.Timestamp.Format(domain.TimestampFormat),
			entry.Line()))
	}
	return domain.OK(strings.Join(lines, "\n")), nil
}

func (in *Interpreter) help([]string) (domain.Result, error) {
	return domain.OK(helpText), nil
}

func (in *Interpreter) clear([]string) (domain.Result, error) {
	return domain.OK(domain.ClearScreenSequence), nil
}

func (in *Interpreter) exit([]string) (domain.Result, error) {
	return domain.ExitResult(), nil
}
