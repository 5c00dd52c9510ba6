package extract

// BuildUserPrompt is exported for testing
var BuildUserPrompt = buildUserPrompt

// BuildResponseSchema is exported for testing
var BuildResponseSchema = buildResponseSchema

// FirstJSONObject is exported for testing
var FirstJSONObject = firstJSONObject

// SystemPromptForTest exposes the fixed extraction system prompt
const SystemPromptForTest = extractionSystemPrompt
