// Package logger wraps zap with a global sugared logger and context helpers
// (ToContext/FromContext/WithName/WithKV).
//
// Services take a context and log through it, so a named, scoped logger
// follows the call chain. The output writer is chosen at startup: the
// interactive UI owns the terminal and sends logs to a file instead.
package logger
