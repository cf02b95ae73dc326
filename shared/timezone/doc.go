// Package timezone centralizes time handling in the application timezone.
// Analytics bucketing deliberately bypasses this package and groups by UTC
// calendar date so that daily series are stable across deployments.
package timezone
