// Package audit records security-relevant events: sign-ins, sign-outs and the barriers
// submitted under a signed-in account. Events go to a dedicated "security_audit" logger
// so they can be filtered out of regular logs.
package audit

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// SecurityEventType categorizes security-relevant events.
type SecurityEventType string

const (
	EventLoginSucceeded   SecurityEventType = "login_succeeded"
	EventLoginFailed      SecurityEventType = "login_failed"
	EventLogout           SecurityEventType = "logout"
	EventBarrierSubmitted SecurityEventType = "barrier_submitted"
)

// SecurityEvent is one auditable event.
type SecurityEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType SecurityEventType `json:"event_type"`
	Server    string            `json:"server"`
	Username  string            `json:"username,omitempty"`
	Details   any               `json:"details,omitempty"`
	Severity  string            `json:"severity"` // info, warning
}

// BarrierDetails identifies a submitted barrier.
type BarrierDetails struct {
	SubmissionID string `json:"submission_id"`
	QuestionID   string `json:"question_id"`
	Photos       int    `json:"photos"`
}

// SecurityAuditor logs security events.
type SecurityAuditor struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewSecurityAuditor creates an auditor logging under the "security_audit" name.
func NewSecurityAuditor(logger *zap.Logger) *SecurityAuditor {
	return &SecurityAuditor{
		logger: logger.Named("security_audit"),
		now:    time.Now,
	}
}

// LogLogin records a sign-in attempt. A nil err means the backend accepted it.
// The password is never logged.
func (a *SecurityAuditor) LogLogin(server, username string, err error) {
	if err == nil {
		a.log(SecurityEvent{
			EventType: EventLoginSucceeded,
			Server:    server,
			Username:  username,
			Severity:  "info",
		}, "Login succeeded")
		return
	}

	a.log(SecurityEvent{
		EventType: EventLoginFailed,
		Server:    server,
		Username:  username,
		Details:   map[string]string{"error": err.Error()},
		Severity:  "warning",
	}, "Login failed")
}

// LogLogout records that stored credentials were removed.
func (a *SecurityAuditor) LogLogout(server, username string) {
	a.log(SecurityEvent{
		EventType: EventLogout,
		Server:    server,
		Username:  username,
		Severity:  "info",
	}, "Logged out")
}

// LogBarrierSubmitted records a barrier accepted by the backend.
func (a *SecurityAuditor) LogBarrierSubmitted(server, username string, details BarrierDetails) {
	a.log(SecurityEvent{
		EventType: EventBarrierSubmitted,
		Server:    server,
		Username:  username,
		Details:   details,
		Severity:  "info",
	}, "Barrier submitted")
}

func (a *SecurityAuditor) log(event SecurityEvent, msg string) {
	event.Timestamp = a.now().UTC()

	// Marshaling these known types cannot fail.
	eventJSON, _ := json.Marshal(event)

	fields := []zap.Field{
		zap.String("event_json", string(eventJSON)),
		zap.String("event_type", string(event.EventType)),
		zap.String("server", event.Server),
		zap.String("username", event.Username),
		zap.String("severity", event.Severity),
	}
	if event.Severity == "warning" {
		a.logger.Warn(msg, fields...)
		return
	}
	a.logger.Info(msg, fields...)
}
