package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanValidate(t *testing.T) {
	cases := []struct {
		name    string
		plan    Plan
		wantErr bool
	}{
		{
			name:    "no rename",
			plan:    Plan{OldUser: "clawdbot"},
			wantErr: false,
		},
		{
			name:    "missing old user",
			plan:    Plan{},
			wantErr: true,
		},
		{
			name:    "new user without rename",
			plan:    Plan{OldUser: "clawdbot", NewUser: "openclaw"},
			wantErr: true,
		},
		{
			name:    "redundant same new user tolerated",
			plan:    Plan{OldUser: "clawdbot", NewUser: "clawdbot"},
			wantErr: false,
		},
		{
			name:    "rename without new user",
			plan:    Plan{OldUser: "clawdbot", RenameUser: true},
			wantErr: true,
		},
		{
			name:    "rename to same login",
			plan:    Plan{OldUser: "clawdbot", NewUser: "clawdbot", RenameUser: true},
			wantErr: true,
		},
		{
			name:    "rename to invalid login",
			plan:    Plan{OldUser: "clawdbot", NewUser: "Open Claw!", RenameUser: true},
			wantErr: true,
		},
		{
			name:    "rename to existing account",
			plan:    Plan{OldUser: "clawdbot", NewUser: "root", RenameUser: true},
			wantErr: true,
		},
		{
			name:    "valid rename",
			plan:    Plan{OldUser: "clawdbot", NewUser: "no-such-login-xyzzy", RenameUser: true},
			wantErr: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.plan.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlanValidateMessagesNameTheLogin(t *testing.T) {
	err := (&Plan{OldUser: "clawdbot", NewUser: "openclaw"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"openclaw"`)
	assert.NotContains(t, err.Error(), "MISSING")
}

func TestFatalErrorRendersCause(t *testing.T) {
	cause := errors.New("usermod failed")
	err := &FatalError{Step: "RenameAccount", Err: cause}
	assert.Equal(t, `stage "RenameAccount" failed: usermod failed`, err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestPlanTargetUser(t *testing.T) {
	p := Plan{OldUser: "clawdbot"}
	assert.Equal(t, "clawdbot", p.TargetUser())

	p = Plan{OldUser: "clawdbot", NewUser: "openclaw", RenameUser: true}
	assert.Equal(t, "openclaw", p.TargetUser())
}
