package sshuser

import (
	"bufio"
	"os"
	"strings"
)

// passwdEntry is one line of the account database.
type passwdEntry struct {
	name string
	gid  string
}

// readPasswd parses the passwd file into entries. Malformed lines are
// skipped; the OS tools own that file's integrity.
func (m *Manager) readPasswd() ([]passwdEntry, error) {
	f, err := os.Open(m.passwdPath)
	if err != nil {
		return nil, ErrUnexpected
	}
	defer f.Close()

	var entries []passwdEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// name:passwd:uid:gid:gecos:home:shell
		fields := strings.Split(line, ":")
		if len(fields) < 4 {
			continue
		}
		entries = append(entries, passwdEntry{name: fields[0], gid: fields[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, ErrUnexpected
	}

	return entries, nil
}

// readGroups maps group name -> gid and group name -> supplementary member
// set from the group file.
func (m *Manager) readGroups() (map[string]string, map[string]map[string]bool, error) {
	f, err := os.Open(m.groupPath)
	if err != nil {
		return nil, nil, ErrUnexpected
	}
	defer f.Close()

	gids := make(map[string]string)
	members := make(map[string]map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// name:passwd:gid:member,member
		fields := strings.Split(line, ":")
		if len(fields) < 4 {
			continue
		}

		name := fields[0]
		gids[name] = fields[2]

		set := make(map[string]bool)
		for _, member := range strings.Split(fields[3], ",") {
			if member != "" {
				set[member] = true
			}
		}
		members[name] = set
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, ErrUnexpected
	}

	return gids, members, nil
}

// GetUsersByPrefix lists accounts whose name starts with prefix. The empty
// prefix matches every account.
func (m *Manager) GetUsersByPrefix(prefix string) ([]string, error) {
	return m.getUsers(prefix, "")
}

// GetUsersByGroup lists accounts belonging to the group, either as primary
// group or supplementary member.
func (m *Manager) GetUsersByGroup(group string) ([]string, error) {
	return m.getUsers("", group)
}

func (m *Manager) getUsers(prefix, group string) ([]string, error) {
	entries, err := m.readPasswd()
	if err != nil {
		return nil, err
	}

	var groupGID string
	var groupMembers map[string]bool
	if group != "" {
		gids, members, err := m.readGroups()
		if err != nil {
			return nil, err
		}
		groupGID = gids[group]
		groupMembers = members[group]
	}

	users := []string{}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.name, prefix) {
			continue
		}
		if group != "" {
			primary := groupGID != "" && entry.gid == groupGID
			if !primary && !groupMembers[entry.name] {
				continue
			}
		}
		users = append(users, entry.name)
	}

	return users, nil
}
