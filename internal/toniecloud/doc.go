// Package toniecloud implements the Creative Tonie cloud client: credential
// exchange against the tonies identity provider, typed reads of households
// and figurines, the three-step chapter upload workflow (pre-signed slot,
// blob upload, chapter registration), and chapter maintenance built on
// whole-list replacement.
//
// The client keeps its bearer token and household selection in an explicit
// Session so multiple independent sessions can coexist in one process.
// Interactive concerns (credential entry, removal confirmation) are isolated
// behind the Prompter interface so the workflow stays headless-testable.
package toniecloud
