// Package prompt supplies the interactive entry points of the client:
// line-buffered credential entry and yes/no confirmation. The Terminal
// implementation refuses to prompt when stdin is not a TTY so headless
// embeddings fail fast instead of hanging; Script feeds canned answers for
// tests and automation.
package prompt
