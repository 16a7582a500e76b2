// Package notifications sends optional ntfy push notifications for upload
// and removal outcomes. Without a configured topic every call is a noop, so
// callers never need to guard notification sends.
package notifications
