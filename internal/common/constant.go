// Package common contains constants shared by the console and the
// development relay.
package common

const (
	// CredentialKey names the session-scoped slot holding the bearer token.
	CredentialKey = "tkn_gzap"

	// TimerStorageKey names the durable slot holding the pairing cooldown.
	TimerStorageKey = "timer-storage"

	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)

// NetworkErrorMessage is shown instead of transport errors.
const NetworkErrorMessage = "Estamos enfrentando problemas. Tente novamente mais tarde."
