package mux

import (
	"os/exec"
	"strconv"
	"strings"
	"unicode"
)

// Process trees feed the cmdline match field. Depth and size are capped so
// long-running helpers (language servers, watchers) do not drown the
// commands a user actually selects on.
const (
	maxProcessTreeDepth   = 5
	maxProcessTreeEntries = 15
)

type proc struct {
	pid  int
	args string
}

// processTable maps a parent PID to its children.
type processTable map[int][]proc

// snapshotProcesses takes a single "ps" snapshot of all processes.
// Returns an empty table on any error; process info is best-effort.
func snapshotProcesses() processTable {
	out, err := exec.Command("ps", "-eo", "pid=,ppid=,args=").Output()
	if err != nil {
		return processTable{}
	}
	return parseProcessTable(string(out))
}

// parseProcessTable parses "PID PPID ARGS..." lines. ARGS may contain
// spaces and the numeric columns are padded with variable whitespace.
func parseProcessTable(out string) processTable {
	table := processTable{}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		pid, err1 := strconv.Atoi(fields[0])
		ppid, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			continue
		}
		table[ppid] = append(table[ppid], proc{pid: pid, args: skipFields(line, 2)})
	}
	return table
}

// skipFields drops the first n whitespace-separated fields of s and
// returns the rest with surrounding space trimmed.
func skipFields(s string, n int) string {
	rest := strings.TrimSpace(s)
	for i := 0; i < n; i++ {
		j := strings.IndexFunc(rest, unicode.IsSpace)
		if j < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[j:])
	}
	return rest
}

// tree returns the command lines of all descendants of pid, breadth first,
// indented by depth.
func (t processTable) tree(pid int) []string {
	if pid <= 0 {
		return nil
	}

	type entry struct {
		pid   int
		depth int
	}
	var tree []string
	queue := []entry{{pid: pid}}
	for len(queue) > 0 && len(tree) < maxProcessTreeEntries {
		e := queue[0]
		queue = queue[1:]
		if e.depth >= maxProcessTreeDepth {
			continue
		}
		indent := strings.Repeat("  ", e.depth)
		for _, child := range t[e.pid] {
			if len(tree) >= maxProcessTreeEntries {
				break
			}
			tree = append(tree, indent+child.args)
			queue = append(queue, entry{pid: child.pid, depth: e.depth + 1})
		}
	}
	return tree
}
