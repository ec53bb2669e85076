package constants

const DefaultAssistantModel = "gemini-2.5-flash"
