package constants

// EmailPattern matches an email address inside free text. Manual entries are
// checked against the same expression, anchored.
const EmailPattern = `\b[\w.-]+@[\w.-]+\.\w+\b`
