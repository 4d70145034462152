// Package ui provides the Bubble Tea front end for platter.
//
// # Architecture Overview
//
// Model is the root tea.Model. It owns a state.Page (the current result
// snapshot, the record open for editing and the form reset counter) and three
// components that render it:
//
//   - SearchForm: name prefix, category, minimum rating and tried-before
//     inputs; enter submits a query
//   - ResultsTable: the snapshot as rows, "No data" when empty and nothing at
//     all before the first search
//   - EditModal: create, update and delete for one record, with a yes/no
//     confirmation before delete
//
// API calls run as tea.Cmds bounded by the configured request timeout. Their
// results come back as searchResultMsg and saveResultMsg; a successful write
// closes the modal, clears the table, resets the form and shows a toast.
//
// # Package Structure
//
//   - app.go: Model, Options, message routing and Run
//   - search_form.go, results_table.go, edit_modal.go, modal.go: page components
//   - header.go: status bar and command bar
//   - toast.go: transient notifications
//   - help.go, activity.go: overlays for key bindings and the log tail
//   - theme.go, style_helpers.go, keys.go, layout.go: presentation
//
// # Key Bindings
//
//   - tab / shift+tab: Move between form fields and the results table
//   - enter: Search (form), edit (table), press the focused button (modal)
//   - ctrl+n: Add a restaurant
//   - ctrl+s / ctrl+r: Save or delete in the edit modal
//   - v: Show review and notes for the selected row
//   - ctrl+l: Activity log
//   - ctrl+t: Cycle theme
//   - f1: Help
//   - ctrl+c: Quit
package ui
