/*
Package tui implements the interactive food dashboard with Bubble Tea.

The main view is a header, a scrollable list of food cards and a status
bar. Everything else is a modal selected by Mode: the add and edit forms,
the delete confirmation, the JSON detail viewer, the activity log, help
and the full error text.

Backend calls never run on the update loop. Each one is a tea.Cmd that
calls the dashboard controller and reports back with a message (foodsLoadedMsg,
resultMsg). The controller owns the catalog store, so View always reads
the latest records.

Keys are resolved through the keybinds registry, so every binding shown in
footers and in the help modal follows the user's keybinds.json.
*/
package tui
