package wm

import (
	"fmt"
	"os"
	"strings"

	"github.com/deurzen/wzrd/internal/winsys"
)

// ParentPID resolves the parent process of a pid. Injected so the process
// lineage walk can be exercised without a live /proc.
type ParentPID func(pid winsys.Pid) (winsys.Pid, bool)

// ProcParentPID reads the ppid from /proc/<pid>/stat.
func ProcParentPID(pid winsys.Pid) (winsys.Pid, bool) {
	stat, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0, false
	}

	fields := strings.Split(string(stat), " ")
	if len(fields) < 4 {
		return 0, false
	}

	var ppid winsys.Pid
	if _, err := fmt.Sscanf(fields[3], "%d", &ppid); err != nil {
		return 0, false
	}

	return ppid, true
}

// spawnerPid walks up the process lineage of pid looking for a tracked
// client that is marked as consuming. The walk stops at the manager's own
// pid; a direct child of the manager yields no spawner.
func (m *Model) spawnerPid(pid winsys.Pid) (winsys.Pid, bool) {
	ppid, ok := m.parentPID(pid)

	for ok {
		ppidNext, okNext := m.parentPID(ppid)

		if okNext {
			if window, found := m.pidMap[ppidNext]; found {
				if c, found := m.clients.GetByWindow(window); found && c.IsConsuming() {
					return ppidNext, true
				}
			}

			if ppidNext == m.wmPid {
				if ppid == pid {
					return 0, false
				}
				return ppid, true
			}
		}

		ppid, ok = ppidNext, okNext
	}

	return 0, false
}
