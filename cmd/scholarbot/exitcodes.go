package main

// Exit codes for the scholarbot CLI.
const (
	ExitSuccess = 0
	ExitError   = 1
)
