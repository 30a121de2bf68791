package core

// Export internal functions for testing
var (
	// Evaluate is exported for testing the expression grammar
	Evaluate = evaluate

	// FormatNumber is exported for testing result rendering
	FormatNumber = formatNumber
)
