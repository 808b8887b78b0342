package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"corpuscheck/internal/report"
	"corpuscheck/internal/runner"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, root string, chapters int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Root: root, Chapters: chapters})
}

// OnPhase forwards pipeline stage transitions to the UI.
func (c *Controller) OnPhase(phase runner.Phase) {
	c.send(Event{Kind: EventPhase, Phase: phase})
}

// OnChapterEvent forwards chapter status updates to the UI.
func (c *Controller) OnChapterEvent(event runner.ChapterEvent) {
	c.send(Event{Kind: EventChapter, Chapter: event})
}

// OnRunEnd forwards run completion to the UI and closes it.
func (c *Controller) OnRunEnd(rep report.Report) {
	c.send(Event{Kind: EventRunEnd, Summary: rep.Summary})
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
