package discover

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/openclaw/openclaw-migrate/internal/layout"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

const passwdPath = "/etc/passwd"

// minInteractiveUID is the conventional first regular-user UID on Linux.
const minInteractiveUID = 1000

// EnumerateHomes lists candidate home directories: regular users from
// /etc/passwd merged with directory entries under /home that the account
// database no longer mentions (stale installations survive account deletion).
func EnumerateHomes(sys sysexec.System) ([]Home, error) {
	byPath := map[string]Home{}

	if data, err := sys.ReadFile(passwdPath); err == nil {
		for _, entry := range parsePasswd(string(data)) {
			byPath[entry.Path] = entry
		}
	}

	if entries, err := sys.ReadDir("/home"); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join("/home", entry.Name())
			if _, known := byPath[path]; !known {
				byPath[path] = Home{Username: entry.Name(), Path: path}
			}
		}
	}

	if len(byPath) == 0 {
		// Unprivileged fallback: scan only the invoker's own home.
		if home, err := layout.InvokerHome(); err == nil {
			byPath[home] = Home{Username: filepath.Base(home), Path: home}
		}
	}

	homes := make([]Home, 0, len(byPath))
	for _, home := range byPath {
		homes = append(homes, home)
	}
	sort.Slice(homes, func(i, j int) bool { return homes[i].Username < homes[j].Username })
	return homes, nil
}

// parsePasswd extracts regular login accounts from passwd content.
func parsePasswd(content string) []Home {
	var homes []Home
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 7 {
			continue
		}
		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		shell := fields[6]
		if uid < minInteractiveUID && uid != 0 {
			continue
		}
		if strings.HasSuffix(shell, "nologin") || strings.HasSuffix(shell, "false") {
			continue
		}
		home := fields[5]
		if home == "" || home == "/" {
			continue
		}
		homes = append(homes, Home{Username: fields[0], Path: home})
	}
	return homes
}
