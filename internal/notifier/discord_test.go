package notifier

import "testing"

// The engine calls the notifier from its remediation paths before a
// session may exist (and always in tests). Both senders must be safe
// no-ops until SetSession has run.
func TestSendersAreNoopsWithoutSession(t *testing.T) {
	SetSession(nil)

	SendCommandAudit("c1", "warn", "u1", "detail")
	SendSecurityAlert("c1", "Member Banned", "u1", "Banned: destructive action burst")
	SendCommandAudit("", "warn", "u1", "detail")
	SendSecurityAlert("", "Member Banned", "u1", "Banned: destructive action burst")
}
