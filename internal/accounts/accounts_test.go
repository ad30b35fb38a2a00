package accounts

import (
	"bytes"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/openclaw-migrate/internal/sysexec"
	"github.com/openclaw/openclaw-migrate/internal/testutil"
)

func stubLookups(t *testing.T, users map[string]*user.User, groups map[string]bool) {
	t.Helper()
	restoreUser, restoreGroup := lookupUserFn, lookupGroupFn
	lookupUserFn = func(name string) (*user.User, error) {
		if u, ok := users[name]; ok {
			return u, nil
		}
		return nil, user.UnknownUserError(name)
	}
	lookupGroupFn = func(name string) (*user.Group, error) {
		if groups[name] {
			return &user.Group{Name: name}, nil
		}
		return nil, user.UnknownGroupError(name)
	}
	t.Cleanup(func() { lookupUserFn, lookupGroupFn = restoreUser, restoreGroup })
}

func TestValidUsername(t *testing.T) {
	valid := []string{"claw", "openclaw", "a", "_svc", "web-agent", "u2", "backup$"}
	for _, name := range valid {
		if !ValidUsername(name) {
			t.Errorf("ValidUsername(%q) = false, want true", name)
		}
	}
	invalid := []string{
		"",
		"Claw",
		"1claw",
		"-claw",
		"claw bot",
		"claw:bot",
		"claw$x",
		strings.Repeat("a", 33),
	}
	for _, name := range invalid {
		if ValidUsername(name) {
			t.Errorf("ValidUsername(%q) = true, want false", name)
		}
	}
}

func TestExistsAndHomeOf(t *testing.T) {
	stubLookups(t, map[string]*user.User{
		"claw": {Username: "claw", Uid: "1000", Gid: "1000", HomeDir: "/home/claw"},
	}, map[string]bool{"claw": true})

	assert.True(t, Exists("claw"))
	assert.False(t, Exists("nobody-here"))
	assert.True(t, GroupExists("claw"))
	assert.False(t, GroupExists("nobody-here"))

	home, err := HomeOf("claw")
	require.NoError(t, err)
	assert.Equal(t, "/home/claw", home)

	_, err = HomeOf("nobody-here")
	require.Error(t, err)
}

func TestIDs(t *testing.T) {
	stubLookups(t, map[string]*user.User{
		"claw":   {Username: "claw", Uid: "1000", Gid: "1001"},
		"broken": {Username: "broken", Uid: "abc", Gid: "1000"},
	}, nil)

	uid, gid, err := IDs("claw")
	require.NoError(t, err)
	assert.Equal(t, 1000, uid)
	assert.Equal(t, 1001, gid)

	_, _, err = IDs("broken")
	require.Error(t, err)
	_, _, err = IDs("nobody-here")
	require.Error(t, err)
}

func TestRenameCommands(t *testing.T) {
	stubs := t.TempDir()
	log := filepath.Join(t.TempDir(), "calls.log")
	testutil.WriteRecordingStub(t, stubs, "usermod", log)
	testutil.WriteRecordingStub(t, stubs, "groupmod", log)
	testutil.PrependPath(t, stubs)

	exec := sysexec.New(sysexec.RealSystem{}, sysexec.Options{Out: &bytes.Buffer{}, Logger: zerolog.Nop()})
	require.NoError(t, RenameUser(exec, "clawdbot", "openclaw"))
	require.NoError(t, RenameGroup(exec, "clawdbot", "openclaw"))
	require.NoError(t, MoveHome(exec, "openclaw", "/home/clawdbot", "/home/openclaw"))

	data, err := os.ReadFile(log)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "usermod -l openclaw clawdbot", lines[0])
	assert.Equal(t, "groupmod -n openclaw clawdbot", lines[1])
	assert.Equal(t, "usermod -d /home/openclaw -m openclaw", lines[2])
}

func TestMoveHomeDescribedNotRun(t *testing.T) {
	stubs := t.TempDir()
	testutil.WriteStubWithExit(t, stubs, "usermod", 1)
	testutil.PrependPath(t, stubs)

	exec := sysexec.New(sysexec.RealSystem{}, sysexec.Options{DryRun: true, Out: &bytes.Buffer{}, Logger: zerolog.Nop()})
	require.NoError(t, MoveHome(exec, "openclaw", "/home/clawdbot", "/home/openclaw"),
		"describe mode records the command without executing it")
	require.Len(t, exec.Actions(), 1)
	assert.Equal(t, sysexec.KindCommand, exec.Actions()[0].Kind)
}

func TestRenameUserFailureSurfaces(t *testing.T) {
	stubs := t.TempDir()
	testutil.WriteStubWithExit(t, stubs, "usermod", 8)
	testutil.PrependPath(t, stubs)

	exec := sysexec.New(sysexec.RealSystem{}, sysexec.Options{Out: &bytes.Buffer{}, Logger: zerolog.Nop()})
	err := RenameUser(exec, "clawdbot", "openclaw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usermod")
}
