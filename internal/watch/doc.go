// Package watch polls files for modification.
//
// It backs `hyperdom render --watch`, which re-renders a script whenever it
// or anything beside it changes. Polling keeps the watcher portable and
// needs no OS notification API.
package watch
