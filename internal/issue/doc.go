// SPDX-License-Identifier: MPL-2.0

// Package issue defines the launcher's error taxonomy: environment
// resolution failures, argument validation failures, unsupported options,
// declined confirmations, and child process failures. Every type wraps a
// sentinel error so callers can classify with errors.Is and map each
// category to its process exit code.
package issue
