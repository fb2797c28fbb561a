// Package prompt provides simple interactive prompts.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//
// Callers check that stdin is a terminal before prompting.
package prompt
