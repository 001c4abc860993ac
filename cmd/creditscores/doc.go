// Command creditscores is the terminal client for the credit score API.
//
// One-shot subcommands (list, show, add, edit, delete) run a single
// operation and print the resulting table or notification. The ui
// subcommand keeps the screen state alive and reads commands from stdin
// until quit. health and config inspect the local installation without
// contacting the server.
package main
