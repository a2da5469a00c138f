// Package log provides the application loggers, built on top of the
// standard slog package.
//
// Loggers write to stderr so they never mix with a report written to
// stdout. Verbose mode lowers the level from Warn to Debug.
//
// # Redaction
//
// Secret scanners report the leaked value in the issue message, and debug
// logs echo issue messages. The RedactingHandler therefore masks:
//   - attributes whose key names a credential (password, token, secret)
//   - string values containing credential-looking text (JWTs, bearer
//     tokens, cloud access keys, PEM private keys)
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("issue dropped", "rule", key, "message", msg)
package log
