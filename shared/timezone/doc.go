// Package timezone centralizes time handling so every timestamp the service
// produces is anchored to the configured application timezone.
package timezone
