package usecase

// BuildPrompt is exported for testing
var BuildPrompt = (*UseCases).buildPrompt

// PrepareContext is exported for testing
var PrepareContext = (*UseCases).prepareContext

// BuildSearchQuery is exported for testing
var BuildSearchQuery = buildSearchQuery

// DegradedMessage is exported for testing
var DegradedMessage = degradedMessage

// Confidence is exported for testing
var Confidence = confidence

// Truncate is exported for testing
var Truncate = truncate
