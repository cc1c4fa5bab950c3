// Package watcher reloads files after edits settle.
//
// # Overview
//
// Editors rarely write a file once. A save is often a truncate followed by
// a write, or a write to a temporary file followed by a rename. The watcher
// collects the file system events for the watched paths and calls back once
// the burst has been quiet for the configured delay.
//
// # Watching
//
// Watch adds the parent directory of each path to fsnotify rather than the
// file itself, so a rename-over save keeps being observed. Events for other
// files in the same directory are ignored.
//
// # Usage
//
//	w, err := watcher.New(250*time.Millisecond, func(paths []string) {
//	    reloadManifest()
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	if err := w.Watch(manifestPath); err != nil {
//	    return err
//	}
package watcher
