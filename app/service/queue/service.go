package queue

import (
	"log/slog"
	"sync"
	"time"

	"github.com/samber/do"
)

const (
	bufferSize  = 16
	idleTimeout = 10 * time.Minute
)

var _ do.Shutdownable = (*Service)(nil)

// Service gives every session its own buffered mailbox drained by a single
// worker, so turns of one session run strictly in order while different
// sessions proceed in parallel. Idle mailboxes are retired.
type Service struct {
	mu        sync.Mutex
	closed    bool
	mailboxes map[int64]chan func()
	wg        sync.WaitGroup
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		mailboxes: make(map[int64]chan func()),
	}, nil
}

// Dispatch enqueues task for the session's worker. A full mailbox drops the
// task with a warning rather than blocking the caller.
func (s *Service) Dispatch(sessionID int64, task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	mailbox, ok := s.mailboxes[sessionID]
	if !ok {
		mailbox = make(chan func(), bufferSize)
		s.mailboxes[sessionID] = mailbox

		s.wg.Add(1)
		go s.drain(sessionID, mailbox)
	}

	select {
	case mailbox <- task:
	default:
		slog.Warn("session mailbox is full", "session_id", sessionID)
	}
}

func (s *Service) drain(sessionID int64, mailbox chan func()) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-mailbox:
			if !ok {
				return
			}

			task()
		case <-time.After(idleTimeout):
			if s.retire(sessionID, mailbox) {
				return
			}
		}
	}
}

// retire removes an empty mailbox; the timer only fires while the worker is
// idle, so no task can be running here. Returns false when a task slipped in
// before the lock was taken.
func (s *Service) retire(sessionID int64, mailbox chan func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(mailbox) > 0 {
		return false
	}

	delete(s.mailboxes, sessionID)

	return true
}

func (s *Service) Shutdown() error {
	s.mu.Lock()
	s.closed = true
	for _, mailbox := range s.mailboxes {
		close(mailbox)
	}
	s.mailboxes = make(map[int64]chan func())
	s.mu.Unlock()

	s.wg.Wait()

	return nil
}
