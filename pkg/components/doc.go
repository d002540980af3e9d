// Package components provides the library elements built on the runtime:
//
//   - m-flex, a styled flex container that can render as another tag
//   - m-spinner, a loading indicator
//   - m-button, a button with intents, sizes, variants and a loading state
//
// Register defines all of them in a document's registry. Static sheets are
// generated from the style registry's catalog, so a configured prefix or
// size scale applies to them as well as to synthesized rules.
package components
