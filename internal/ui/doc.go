// Package ui implements an interactive terminal browser over the catalog using bubbletea's Elm architecture.
//
// The (view) [Model] lists every book through charmbracelet/bubbles/list, which also provides
// fuzzy filtering on title, author and year. From the list the user can:
//  1. toggle the selected book between AVAILABLE and CHECKED_OUT (enter or t)
//  2. remove the selected book after a y/n confirmation (d)
//  3. quit (q)
//
// Every action goes through [catalog.Library], so each change is persisted before the list is redrawn.
// Results flow back to Update as a [Msg] and are shown in the footer until they expire.
//
// The package also exports the lipgloss palette used by the line-oriented menu in cmd.
package ui
