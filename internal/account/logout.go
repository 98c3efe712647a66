package account

import "context"

// Logout runs terminate and then sends the visitor to loginPath. Navigation
// happens whether terminate succeeds, fails or panics; failures go to logf.
func Logout(ctx context.Context, terminate func(context.Context) error, r Router, loginPath string, logf func(format string, a ...any)) {
	defer r.Replace(loginPath)
	defer func() {
		if rec := recover(); rec != nil {
			logf("session termination panicked: %v", rec)
		}
	}()
	if err := terminate(ctx); err != nil {
		logf("session termination failed: %v", err)
	}
}
