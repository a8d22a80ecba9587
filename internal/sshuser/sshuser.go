// Package sshuser wraps the OS account-administration tools behind typed
// operations. All mutations shell out to useradd/usermod/userdel/chage and
// classify the process outcome into the UserError taxonomy; nothing here
// retries or repairs.
package sshuser

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"regexp"
	"time"

	"github.com/zolagonano/ssh-mgmt-toolkit/internal/creds"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/usage"
)

// chageExpRe extracts the expiry field from `chage -l` output.
var chageExpRe = regexp.MustCompile(`Account expires\t+: (.*)\n`)

// chageDateLayout is the locale format chage prints dates in.
const chageDateLayout = "Jan 02, 2006"

// Manager executes account lifecycle operations on the local host.
type Manager struct {
	creds        *creds.Generator
	defaultShell string
	tracePath    string

	// Account database paths, overridable for tests.
	passwdPath string
	groupPath  string
}

func NewManager(gen *creds.Generator, defaultShell, tracePath string) *Manager {
	return &Manager{
		creds:        gen,
		defaultShell: defaultShell,
		tracePath:    tracePath,
		passwdPath:   "/etc/passwd",
		groupPath:    "/etc/group",
	}
}

// DefaultShell reports the shell used when a request omits one.
func (m *Manager) DefaultShell() string { return m.defaultShell }

// classifyExit maps a process outcome onto the UserError taxonomy. Exit
// codes follow shadow-utils: 1 permission, 3 bad shell, 6 unknown
// user/group, 9 duplicate user. Anything else non-zero is the explicit
// catch-all; a missing exit code means the process was killed.
func classifyExit(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// Tool could not be spawned at all.
		return ErrCommandNotFound
	}

	code := exitErr.ExitCode()
	if code < 0 {
		return ErrProcessTerminated
	}

	switch code {
	case 1:
		return ErrPermissionDenied
	case 3:
		return ErrInvalidShell
	case 6:
		return ErrInvalidUserOrGroup
	case 9:
		return ErrUserAlreadyExists
	default:
		return ErrUnexpected
	}
}

// Add creates an OS account with a pre-hashed password. The expiry date is
// validated before any process is spawned.
func (m *Manager) Add(username, shell, group, expDate, password string) (*models.SSHUser, error) {
	expDate, err := creds.FormatExpDate(expDate)
	if err != nil {
		return nil, ErrInvalidExpDate
	}

	passwordHash, err := m.creds.HashPassword(password)
	if err != nil {
		return nil, ErrInvalidPassHash
	}

	cmd := exec.Command("useradd",
		"-p", passwordHash,
		"-s", shell,
		"-g", group,
		"-e", expDate,
		username,
	)
	if err := classifyExit(cmd.Run()); err != nil {
		return nil, err
	}

	log.Printf("[sshuser] Account created: %s (group %s, expires %s)", username, group, expDate)

	return &models.SSHUser{
		Username:     username,
		PasswordHash: passwordHash,
		Shell:        shell,
		Usergroup:    group,
		ExpDate:      expDate,
	}, nil
}

// AutoAdd synthesizes the next username for a prefix and creates it with
// the deterministic password for that name.
func (m *Manager) AutoAdd(prefix string, usersCount uint64, group, expDate string) (*models.SSHUser, error) {
	username := fmt.Sprintf("%s%d", prefix, usersCount+1)
	password := m.creds.DerivePassword(username)

	return m.Add(username, m.defaultShell, group, expDate, password)
}

// RestorePassword rebuilds a user's deterministic password and its storage
// hash without touching the account.
func (m *Manager) RestorePassword(username string) (*models.UserRawCreds, error) {
	password := m.creds.DerivePassword(username)
	passwordHash, err := m.creds.HashPassword(password)
	if err != nil {
		return nil, ErrInvalidPassHash
	}

	return &models.UserRawCreds{
		Username:     username,
		Password:     password,
		PasswordHash: passwordHash,
	}, nil
}

// Del removes an OS account.
func (m *Manager) Del(username string) (*models.UserStatus, error) {
	if err := classifyExit(exec.Command("userdel", username).Run()); err != nil {
		return nil, err
	}

	return &models.UserStatus{
		Username: username,
		Status:   fmt.Sprintf("user %s successfully deleted", username),
	}, nil
}

// ChangePass swaps a user's password, hashing it before the tool sees it.
func (m *Manager) ChangePass(username, password string) (*models.UserRawCreds, error) {
	passwordHash, err := m.creds.HashPassword(password)
	if err != nil {
		return nil, ErrInvalidPassHash
	}

	if err := classifyExit(exec.Command("usermod", "-p", passwordHash, username).Run()); err != nil {
		return nil, err
	}

	return &models.UserRawCreds{
		Username:     username,
		Password:     password,
		PasswordHash: passwordHash,
	}, nil
}

// ChangeGrp moves a user to another primary group.
func (m *Manager) ChangeGrp(username, group string) (*models.ChGrpMsg, error) {
	if err := classifyExit(exec.Command("usermod", "-g", group, username).Run()); err != nil {
		return nil, err
	}

	return &models.ChGrpMsg{
		Username: username,
		Group:    group,
		Message:  fmt.Sprintf("user %s's group successfully changed to %s", username, group),
	}, nil
}

// ChangeExp updates the account expiry date, re-validating the format first.
func (m *Manager) ChangeExp(username, expDate string) (*models.ChExpMsg, error) {
	expDate, err := creds.FormatExpDate(expDate)
	if err != nil {
		return nil, ErrInvalidExpDate
	}

	if err := classifyExit(exec.Command("chage", "-E", expDate, username).Run()); err != nil {
		return nil, err
	}

	return &models.ChExpMsg{
		Username: username,
		ExpDate:  expDate,
		Message:  fmt.Sprintf("user %s's expiry date successfully changed to %s", username, expDate),
	}, nil
}

// Lock disables a user's password.
func (m *Manager) Lock(username string) (*models.UserStatus, error) {
	if err := classifyExit(exec.Command("usermod", "-L", username).Run()); err != nil {
		return nil, err
	}

	return &models.UserStatus{
		Username: username,
		Status:   fmt.Sprintf("user %s successfully locked", username),
	}, nil
}

// Unlock re-enables a locked password.
func (m *Manager) Unlock(username string) (*models.UserStatus, error) {
	if err := classifyExit(exec.Command("usermod", "-U", username).Run()); err != nil {
		return nil, err
	}

	return &models.UserStatus{
		Username: username,
		Status:   fmt.Sprintf("user %s successfully unlocked", username),
	}, nil
}

// GetChageExp reads the account expiry via `chage -l`. The tool prints a
// locale date or "never"; the date is reparsed into canonical form.
func (m *Manager) GetChageExp(username string) (*models.UserExp, error) {
	out, err := exec.Command("chage", "-l", username).Output()
	if err != nil {
		// chage reports unknown accounts on stderr rather than with a
		// dedicated exit code.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && bytes.Contains(exitErr.Stderr, []byte("does not exist in /etc/passwd")) {
			return nil, ErrInvalidUserOrGroup
		}
		return nil, classifyExit(err)
	}

	caps := chageExpRe.FindSubmatch(out)
	if caps == nil {
		return nil, ErrUnexpected
	}

	expDate := string(caps[1])
	if expDate == "never" {
		return &models.UserExp{Username: username, ExpDate: "never"}, nil
	}

	date, err := time.Parse(chageDateLayout, expDate)
	if err != nil {
		return nil, ErrInvalidExpDate
	}

	return &models.UserExp{
		Username: username,
		ExpDate:  date.Format(creds.ExpDateLayout),
	}, nil
}

// UsageByPrefix totals trace usage for every account matching the prefix.
func (m *Manager) UsageByPrefix(prefix string) (map[string]float64, error) {
	users, err := m.GetUsersByPrefix(prefix)
	if err != nil {
		return nil, err
	}
	return m.usageTotals(users)
}

// UsageByGroup totals trace usage for every member of the group.
func (m *Manager) UsageByGroup(group string) (map[string]float64, error) {
	users, err := m.GetUsersByGroup(group)
	if err != nil {
		return nil, err
	}
	return m.usageTotals(users)
}

// UsageByName totals trace usage for a single account.
func (m *Manager) UsageByName(username string) (map[string]float64, error) {
	return m.usageTotals([]string{username})
}

func (m *Manager) usageTotals(users []string) (map[string]float64, error) {
	totals, err := usage.Totals(m.tracePath, users)
	if err != nil {
		return nil, ErrInvalidTraceFile
	}
	return totals, nil
}
