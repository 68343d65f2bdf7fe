// Package cli provides gzapctl, the interactive admin console for the GZAP
// messaging relay.
//
// It wires configuration, the local state database, the relay API services
// and a REPL. Protected screens pass through the session gate, which checks
// the credential, counts down the idle budget and keeps "user" accounts out
// of admin screens. A background watcher shows online/offline in the prompt.
//
// Screens:
//   - home, instance (pairing QR code, connection, disconnect)
//   - messages (paginated delivery log, resend failed)
//   - companies, users (admin only)
//   - profile, whoami, signout
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and navigate for details.
package cli
