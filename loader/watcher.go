package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"tech-blog/internal/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher 는 content root 아래의 소스 파일 변경을 감지해 onChange 를 호출한다.
// 짧은 시간 안에 발생한 여러 이벤트는 debounce 구간 동안 하나로 묶인다.
type Watcher struct {
	root      string
	extension string
	debounce  time.Duration
	onChange  func(ctx context.Context)
}

func NewWatcher(root, extension string, debounce time.Duration, onChange func(ctx context.Context)) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:      root,
		extension: extension,
		debounce:  debounce,
		onChange:  onChange,
	}
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := addWatchDirs(fw, w.root); err != nil {
		return fmt.Errorf("add watch dirs: %w", err)
	}

	logger.InfoWithFields("watching content", logger.Fields{"root": w.root})

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// 새 카테고리 디렉터리도 감시 대상에 추가한다.
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addWatchDirs(fw, event.Name)
				}
			}
			if !w.relevant(event) {
				continue
			}
			if !pending {
				timer.Reset(w.debounce)
				pending = true
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.WarnWithFields("watch error", logger.Fields{"error": err.Error()})
		case <-timer.C:
			pending = false
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	if w.extension == "" {
		return true
	}
	return strings.HasSuffix(event.Name, w.extension)
}

func addWatchDirs(fw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return fw.Add(path)
		}
		return nil
	})
}
