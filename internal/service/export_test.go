package service

// Hooks for the external test package.
var (
	ParseHour = parseHour
	Available = available
)
