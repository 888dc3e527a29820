package scene

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeKind classifies an edited file by what a reload has to redo.
type ChangeKind int

const (
	ChangeScene ChangeKind = iota + 1
	ChangeLevel
	ChangeFilter
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeScene:
		return "scene"
	case ChangeLevel:
		return "level"
	case ChangeFilter:
		return "filter"
	}
	return "unknown"
}

// Change is one edited file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Batch is every file edited during one quiet period, sorted by path.
type Batch []Change

// Has reports whether the batch touches a file of kind k.
func (b Batch) Has(k ChangeKind) bool {
	return slices.ContainsFunc(b, func(c Change) bool { return c.Kind == k })
}

// DefaultSettle is how long a directory must stay quiet before a Batch is sent.
const DefaultSettle = 100 * time.Millisecond

// Watcher turns bursts of filesystem events on scene, level and filter files
// into Batches. Editors often write a file several times per save, so events
// are collected until the directory has been quiet for the settle period.
type Watcher struct {
	fs      *fsnotify.Watcher
	log     *zap.Logger
	settle  time.Duration
	batches chan Batch

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches dirs. Watch errors are logged, never delivered.
func NewWatcher(log *zap.Logger, settle time.Duration, dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	w := &Watcher{
		fs:      fsw,
		log:     log,
		settle:  settle,
		batches: make(chan Batch, 4),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Batches is closed once the Watcher stops.
func (w *Watcher) Batches() <-chan Batch {
	return w.batches
}

// Close stops the Watcher and waits for its goroutine. Safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stop)
		err = w.fs.Close()
	})
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.batches)

	pending := make(map[string]ChangeKind)
	timer := time.NewTimer(w.settle)
	timer.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := classify(ev.Name)
			if !ok {
				continue
			}
			pending[ev.Name] = kind
			timer.Reset(w.settle)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("scene: watch error", zap.Error(err))

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make(Batch, 0, len(pending))
			for path, kind := range pending {
				batch = append(batch, Change{Path: path, Kind: kind})
			}
			slices.SortFunc(batch, func(a, b Change) int { return strings.Compare(a.Path, b.Path) })
			clear(pending)

			select {
			case w.batches <- batch:
			case <-w.stop:
				return
			}

		case <-w.stop:
			timer.Stop()
			return
		}
	}
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeScene, true
	case ".json":
		return ChangeLevel, true
	case ".tengo":
		return ChangeFilter, true
	}
	return 0, false
}
