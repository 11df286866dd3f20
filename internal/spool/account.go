package spool

import (
	"fmt"
	"os/user"
	"strconv"
)

// AccountResolver resolves a system account name to numeric user and
// group ids.
type AccountResolver interface {
	Lookup(name string) (uid, gid int, err error)
}

// SystemAccounts resolves accounts against the local user database.
type SystemAccounts struct{}

// Lookup returns the uid and gid for name.
func (SystemAccounts) Lookup(name string) (int, int, error) {
	account, err := user.Lookup(name)
	if err != nil {
		return 0, 0, err
	}
	uid, err := strconv.Atoi(account.Uid)
	if err != nil {
		return 0, 0, fmt.Errorf("parse uid %q: %w", account.Uid, err)
	}
	gid, err := strconv.Atoi(account.Gid)
	if err != nil {
		return 0, 0, fmt.Errorf("parse gid %q: %w", account.Gid, err)
	}
	return uid, gid, nil
}
