package usecase

// ComposeUtterance is exported for testing
var ComposeUtterance = composeUtterance

// ChatSystemPrompt is exported for testing
var ChatSystemPrompt = chatSystemPrompt
