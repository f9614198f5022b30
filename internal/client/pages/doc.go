// Package pages holds the state behind each client screen. Pages talk to
// the backend and the uploader through small interfaces and leave
// rendering to the CLI.
package pages
