// Package cli provides the interactive gophrecipes command-line client.
//
// NewApp wires configuration, local storage, the query cache, the recipe
// provider and the services into an App; App.Run starts the REPL and blocks
// until the user exits.
//
// Browsing the bundled catalog and the provider needs no account. Saving,
// favoriting, diet changes and meal-plan edits require a session created by
// register or login; the session survives restarts until it expires or the
// user logs out.
package cli
