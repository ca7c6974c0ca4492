package services

import "errors"

var (
	// ErrConnection means the database was unreachable. No session state
	// changes when it is returned.
	ErrConnection = errors.New("could not connect to the database")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPendingApproval is a named login outcome, not a failure: the
	// credentials were correct but the account still awaits admin approval,
	// so no session is established.
	ErrPendingApproval = errors.New("account is awaiting admin approval")

	// ErrInvalidInput is returned by local validation before any network or
	// database call is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUsernameTaken aborts a join request for an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrCreationFailed wraps any failure during team bootstrap. The
	// bootstrap transaction has been rolled back when it is returned.
	ErrCreationFailed = errors.New("team creation failed")

	// ErrTeamMissing means the database authenticated a user but holds no
	// team row, which should not happen once bootstrapped.
	ErrTeamMissing = errors.New("team record missing from database")

	// ErrTeamUnverified means the registry does not know the team number and
	// the caller has not confirmed proceeding anyway.
	ErrTeamUnverified = errors.New("team not found in registry")

	// ErrTeamExists means the database already contains a team and the
	// caller has not confirmed the destructive reset.
	ErrTeamExists = errors.New("database already contains a team")

	// ErrNotAdmin rejects an admin-only operation for a non-admin identity.
	ErrNotAdmin = errors.New("admin privilege required")

	// ErrSelfRemoval rejects deleting one's own active account.
	ErrSelfRemoval = errors.New("cannot remove your own account")

	ErrUserNotFound  = errors.New("user not found")
	ErrRoleNotFound  = errors.New("role not found")
	ErrGuideNotFound = errors.New("guide not found")
)
