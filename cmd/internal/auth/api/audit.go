package authapi

// Audit events are structured slog records so they work identically over
// both store backends. Identifiers are logged; passwords, tokens, and hashes
// never are.

func (h *Handler) auditRegisterSuccess(userID, username string) {
	h.log.Info("auth.register.success", "user_id", userID, "username", username)
}

func (h *Handler) auditRegisterConflict(username string) {
	h.log.Warn("auth.register.conflict", "username", username)
}

func (h *Handler) auditLoginFailed(username string, reason string) {
	h.log.Warn("auth.login.failed", "username", username, "reason", reason)
}

func (h *Handler) auditLoginSuccess(userID, sessionID string) {
	h.log.Info("auth.login.success", "user_id", userID, "session_id", sessionID)
}

func (h *Handler) auditLogout(sessionID string) {
	h.log.Info("auth.logout", "session_id", sessionID)
}

func (h *Handler) auditLogoutAll(userID string) {
	h.log.Info("auth.logout_all", "user_id", userID)
}
