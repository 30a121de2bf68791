package config

import "time"

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewAuthForTest creates an Auth config for testing purposes
func NewAuthForTest(masterPassword, clientID, clientSecret, credentialsFile string) *Auth {
	return &Auth{
		masterPassword:     masterPassword,
		googleClientID:     clientID,
		googleClientSecret: clientSecret,
		credentialsFile:    credentialsFile,
	}
}

// NewPatternsForTest creates a Patterns config for testing purposes
func NewPatternsForTest(path string) *Patterns {
	return &Patterns{path: path}
}

// NewSessionForTest creates a Session config for testing purposes
func NewSessionForTest(ttl, sweepInterval time.Duration) *Session {
	return &Session{
		ttl:           ttl,
		sweepInterval: sweepInterval,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
