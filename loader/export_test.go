package loader

import "github.com/fsnotify/fsnotify"

const MaxSourceBytes = maxSourceBytes

func WatcherRelevant(w *Watcher, event fsnotify.Event) bool {
	return w.relevant(event)
}
