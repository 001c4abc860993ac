// Package view holds the client-side state of the credit score screen and
// renders it for a terminal.
//
// Board owns the local record set, the add/edit form, and a single-slot
// notification. Every operation talks to the server through the Backend
// interface and reports failure as an error notification; local state only
// changes after the server confirms a mutation. Notifications expire after a
// fixed lifetime measured against an injectable clock, and a new notification
// replaces the current one.
package view
