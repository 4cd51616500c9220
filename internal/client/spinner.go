package client

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner is the busy affordance shown while a call is in flight. It is
// started before the request goes out and stopped in a deferred path,
// so the UI always returns to an interactive state.
type Spinner struct {
	w    io.Writer
	stop chan struct{}
	wg   sync.WaitGroup
}

func StartSpinner(w io.Writer, label string) *Spinner {
	s := &Spinner{w: w, stop: make(chan struct{})}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		frames := []rune{'|', '/', '-', '\\'}
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		fmt.Fprintf(w, "%s %c", label, frames[0])
		for {
			select {
			case <-s.stop:
				// clear the spinner line
				fmt.Fprintf(w, "\r%*s\r", len(label)+2, "")
				return
			case <-t.C:
				i++
				fmt.Fprintf(w, "\r%s %c", label, frames[i%len(frames)])
			}
		}
	}()
	return s
}

func (s *Spinner) Stop() {
	close(s.stop)
	s.wg.Wait()
}
