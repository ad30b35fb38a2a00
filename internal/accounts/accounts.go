// Package accounts wraps the system account database. Queries go through
// os/user; mutations are shadow-utils commands routed via the execution shim.
package accounts

import (
	"fmt"
	"os/user"
	"regexp"
	"strconv"

	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/sysexec"
)

// Seams for tests; user.Lookup cannot be pointed at a fixture.
var (
	lookupUserFn  = user.Lookup
	lookupGroupFn = user.LookupGroup
)

// usernameRe matches the portable POSIX login name rules shadow-utils enforce.
var usernameRe = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

// ValidUsername reports whether name is an acceptable new login.
func ValidUsername(name string) bool {
	return name != "" && len(name) <= 32 && usernameRe.MatchString(name)
}

// Exists reports whether a user with the given login exists.
func Exists(name string) bool {
	_, err := lookupUserFn(name)
	return err == nil
}

// GroupExists reports whether a group with the given name exists.
func GroupExists(name string) bool {
	_, err := lookupGroupFn(name)
	return err == nil
}

// HomeOf returns the home directory recorded for the login.
func HomeOf(name string) (string, error) {
	u, err := lookupUserFn(name)
	if err != nil {
		return "", fmt.Errorf(messages.AccountsLookupFailedFmt, name, err)
	}
	return u.HomeDir, nil
}

// IDs returns the numeric uid and gid of the login.
func IDs(name string) (int, int, error) {
	u, err := lookupUserFn(name)
	if err != nil {
		return 0, 0, fmt.Errorf(messages.AccountsLookupFailedFmt, name, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, fmt.Errorf(messages.AccountsUIDParseFmt, name, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return 0, 0, fmt.Errorf(messages.AccountsGIDParseFmt, name, err)
	}
	return uid, gid, nil
}

// RenameUser renames the login. The home directory is moved separately so the
// rename itself stays cheap and restartable.
func RenameUser(exec *sysexec.Executor, oldName string, newName string) error {
	return exec.Run("usermod", "-l", newName, oldName)
}

// RenameGroup renames the user's primary group.
func RenameGroup(exec *sysexec.Executor, oldName string, newName string) error {
	return exec.Run("groupmod", "-n", newName, oldName)
}

// MoveHome relocates the login's home directory and updates the account
// record. usermod -m falls back to copy+remove across filesystems. Routed as
// a move so later reads in the same run resolve through the new location.
func MoveHome(exec *sysexec.Executor, name string, oldHome string, newHome string) error {
	return exec.RunMove(oldHome, newHome, "usermod", "-d", newHome, "-m", name)
}
