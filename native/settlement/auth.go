package settlement

// Authority is the resolved capability of a caller. The hosting runtime
// authenticates the caller and hands the engine either the privileged tag or
// the specific account identity; the engine only asserts the required tag and
// never performs authentication itself.
type Authority struct {
	privileged bool
	account    [20]byte
	hasAccount bool
}

// PrivilegedAuthority returns the capability of an elevated, system-level
// caller.
func PrivilegedAuthority() Authority {
	return Authority{privileged: true}
}

// AccountAuthority returns the capability of a caller authenticated as the
// supplied account.
func AccountAuthority(account [20]byte) Authority {
	return Authority{account: account, hasAccount: true}
}

// Privileged reports whether the capability carries system-level authority.
func (a Authority) Privileged() bool { return a.privileged }

// Account returns the authenticated account identity, if any.
func (a Authority) Account() ([20]byte, bool) {
	return a.account, a.hasAccount
}

func requirePrivileged(a Authority) error {
	if !a.privileged {
		return ErrUnauthorized
	}
	return nil
}

func requireAccount(a Authority) ([20]byte, error) {
	if !a.hasAccount {
		return [20]byte{}, ErrUnauthorized
	}
	return a.account, nil
}
