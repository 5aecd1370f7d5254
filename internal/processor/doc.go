// Package processor contains the application logic behind the command line.
// It loads the deck from a file, the remote endpoint or the offline cache,
// builds the flash card and study session from the resolved flags and hands
// them to the GUI or the terminal front end. The one-shot commands
// (--list-categories, --export-deck, --archive-cache) live here too.
package processor
