package wm

import (
	"strings"

	"github.com/deurzen/wzrd/internal/workspace"
	"github.com/deurzen/wzrd/internal/zone"
)

// WorkspaceReport is a read-only snapshot of one workspace, taken on the
// event loop for out-of-process observers.
type WorkspaceReport struct {
	Index   int
	Name    string
	Layout  string
	Clients int
	Active  bool
}

// ReportWorkspaces snapshots every workspace. Must run on the event loop.
func (m *Model) ReportWorkspaces() []WorkspaceReport {
	active := m.ActiveWorkspace()

	reports := make([]WorkspaceReport, 0, m.workspaces.Len())
	for i := 0; i < m.workspaces.Len(); i++ {
		ws, ok := m.workspaces.Get(i)
		if !ok {
			continue
		}

		reports = append(reports, WorkspaceReport{
			Index:   i,
			Name:    ws.Name(),
			Layout:  m.workspaceLayoutName(ws),
			Clients: ws.Len(),
			Active:  i == active,
		})
	}

	return reports
}

// ClientCount returns the number of managed clients across all workspaces.
func (m *Model) ClientCount() int {
	return m.clients.Len()
}

func (m *Model) workspaceLayoutName(ws *workspace.Workspace) string {
	id, ok := ws.ActiveFocusZone()
	if !ok {
		id = ws.RootZone()
	}

	if z, ok := m.zones.ZoneChecked(m.zones.NearestCycle(id)); ok {
		if content := z.Content(); content.Kind == zone.ContentLayout && content.Layout != nil {
			return strings.ToLower(content.Layout.Kind().String())
		}
	}
	return ""
}
