package main

const (
	// outputFilePermission is used for --output-file (owner read/write).
	outputFilePermission = 0o600

	flagConfig     = "config"
	flagOutputFile = "output-file"
)
