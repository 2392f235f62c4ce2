package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"refugebot/app/client/directory"
	"refugebot/app/client/geocode"
	"refugebot/app/config"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

// Directory lists the category vocabulary and searches points of interest.
type Directory interface {
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query directory.Query) (map[string]directory.Point, error)
}

// Geocoder resolves a free-text address; nil result means no match.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*geocode.Result, error)
}

var (
	_ Directory = (*directory.Client)(nil)
	_ Geocoder  = (*geocode.Client)(nil)
)

// Service owns one finite-state dialogue per chat session. Handle processes
// exactly one inbound event and returns the outbound directives for it; on
// error the session is left exactly as it was, so redelivering the same
// event is a safe retry.
type Service struct {
	cfg      *config.Config
	dir      Directory
	geocoder Geocoder
	store    *Store
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:      do.MustInvoke[*config.Config](di),
		dir:      do.MustInvoke[*directory.Client](di),
		geocoder: do.MustInvoke[*geocode.Client](di),
		store:    NewStore(),
	}, nil
}

func (s *Service) ActiveSessions() int {
	return s.store.Len()
}

func (s *Service) Handle(ctx context.Context, event Event) ([]Directive, error) {
	switch e := event.(type) {
	case EntryCommand:
		return s.start(ctx, e.Chat)
	case CancelCommand:
		return s.cancel(e.Chat), nil
	case SkipCommand:
		return s.skipLocation(e.Chat), nil
	case LocationMessage:
		return s.locationReceived(ctx, e)
	case TextMessage:
		return s.textReceived(ctx, e)
	default:
		return nil, fmt.Errorf("unknown event type %T", event)
	}
}

// start handles the entry command: it resets any previous session for the
// chat, pins a fresh vocabulary snapshot and shows the category menu.
func (s *Service) start(ctx context.Context, chatID int64) ([]Directive, error) {
	vocabulary, err := s.dir.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	s.store.Put(&Session{
		ChatID:     chatID,
		State:      StateAwaitingCategory,
		Vocabulary: vocabulary,
	})

	slog.Info("Conversation started", "chat_id", chatID, "categories", len(vocabulary))

	return []Directive{
		SendText{Body: msgGreeting},
		categoryMenu(pie.Sort(vocabulary)),
	}, nil
}

func (s *Service) cancel(chatID int64) []Directive {
	s.store.Delete(chatID)

	slog.Info("Conversation cancelled", "chat_id", chatID)

	return []Directive{
		SendText{Body: msgCancelled},
		ClearMenu{},
	}
}

func (s *Service) skipLocation(chatID int64) []Directive {
	session, ok := s.store.Get(chatID)
	if !ok {
		return []Directive{SendText{Body: msgNoConversation}}
	}

	if session.State != StateAwaitingLocation {
		return s.reprompt(session)
	}

	session.State = StateAwaitingAddress

	return []Directive{
		SendText{Body: msgTypeAddress},
		ClearMenu{},
	}
}

func (s *Service) locationReceived(ctx context.Context, event LocationMessage) ([]Directive, error) {
	session, ok := s.store.Get(event.Chat)
	if !ok {
		return []Directive{SendText{Body: msgNoConversation}}, nil
	}

	if session.State != StateAwaitingLocation {
		return s.reprompt(session), nil
	}

	point := GeoPoint{Latitude: event.Latitude, Longitude: event.Longitude}

	return s.runSearch(ctx, session, point, nil)
}

func (s *Service) textReceived(ctx context.Context, event TextMessage) ([]Directive, error) {
	session, ok := s.store.Get(event.Chat)
	if !ok {
		return []Directive{SendText{Body: msgNoConversation}}, nil
	}

	text := strings.TrimSpace(event.Text)

	switch session.State {
	case StateAwaitingCategory:
		return s.selectCategory(session, text), nil
	case StateAwaitingMoreCategories:
		return s.moreCategories(session, text), nil
	case StateAwaitingLocation:
		return s.reprompt(session), nil
	case StateAwaitingAddress:
		return s.resolveAddress(ctx, session, text)
	case StateDone:
		return s.finish(ctx, session, text)
	default:
		return nil, fmt.Errorf("session %d in unknown state %q", session.ChatID, session.State)
	}
}

// selectCategory validates the pick against the pinned vocabulary and
// accumulates it. Selecting an already-chosen category again is a no-op,
// not an error.
func (s *Service) selectCategory(session *Session, text string) []Directive {
	remaining := remainingCategories(session.Vocabulary, session.Categories)

	if !pie.Contains(remaining, text) && !pie.Contains(session.Categories, text) {
		return []Directive{
			SendText{Body: msgInvalidCategory},
			categoryMenu(remaining),
		}
	}

	if !pie.Contains(session.Categories, text) {
		session.Categories = append(session.Categories, text)
	}

	slog.Info("Category selected",
		"chat_id", session.ChatID,
		"category", text,
		"selected", len(session.Categories))

	remaining = remainingCategories(session.Vocabulary, session.Categories)
	if len(remaining) == 0 {
		session.State = StateAwaitingLocation

		return []Directive{
			SendText{Body: msgAllSelected + "\n" + msgNeedLocation},
			locationMenu(),
		}
	}

	session.State = StateAwaitingMoreCategories

	return []Directive{
		SendText{Body: msgAnotherCategory},
		yesNoMenu(),
	}
}

func (s *Service) moreCategories(session *Session, text string) []Directive {
	switch strings.ToLower(text) {
	case answerYes:
		session.State = StateAwaitingCategory

		return []Directive{
			SendText{Body: msgSelectAnother},
			categoryMenu(remainingCategories(session.Vocabulary, session.Categories)),
		}
	case answerNo:
		session.State = StateAwaitingLocation

		return []Directive{
			SendText{Body: msgNeedLocation},
			locationMenu(),
		}
	default:
		return []Directive{
			SendText{Body: msgInvalidYesNo},
			yesNoMenu(),
		}
	}
}

func (s *Service) resolveAddress(ctx context.Context, session *Session, address string) ([]Directive, error) {
	result, err := s.geocoder.Resolve(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}

	if result == nil {
		return []Directive{
			SendText{Body: msgAddressNotFound},
		}, nil
	}

	point := GeoPoint{Latitude: result.Latitude, Longitude: result.Longitude}
	prelude := []Directive{
		SendText{Body: fmt.Sprintf(msgFoundAddressFmt, result.FormattedAddress)},
		ClearMenu{},
	}

	return s.runSearch(ctx, session, point, prelude)
}

// runSearch queries the directory for the session's filters around point.
// The session is only mutated after the call succeeds; a transport failure
// leaves it byte-for-byte as it was.
func (s *Service) runSearch(ctx context.Context, session *Session, point GeoPoint, prelude []Directive) ([]Directive, error) {
	points, err := s.dir.Search(ctx, directory.Query{
		Latitude:    &point.Latitude,
		Longitude:   &point.Longitude,
		MaxDistance: s.cfg.Directory.MaxDistanceMeters,
		Limit:       s.cfg.Directory.PageSize,
		Categories:  session.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search points of interest: %w", err)
	}

	session.Location = &point

	if len(points) == 0 {
		session.State = StateAwaitingMoreCategories

		slog.Info("No points of interest found",
			"chat_id", session.ChatID,
			"categories", session.Categories)

		return append(prelude,
			SendText{Body: msgNoPoints},
			yesNoMenu(),
		), nil
	}

	session.State = StateDone

	slog.Info("Points of interest found",
		"chat_id", session.ChatID,
		"categories", session.Categories,
		"points", len(points))

	directives := append(prelude,
		SendText{Body: msgNearestPoints},
		ClearMenu{},
	)

	for _, name := range pie.Sort(pie.Keys(points)) {
		location := points[name]

		directives = append(directives,
			SendText{Body: name + ":"},
			SendLocation{
				Name:      name,
				Latitude:  location.Latitude,
				Longitude: location.Longitude,
			},
		)
	}

	return append(directives,
		SendText{Body: msgSearchAgain},
		yesNoMenu(),
	), nil
}

// finish handles the "search again?" answer. Anything but yes/no ends the
// conversation with a pointer at the entry command.
func (s *Service) finish(ctx context.Context, session *Session, text string) ([]Directive, error) {
	switch strings.ToLower(text) {
	case answerYes:
		return s.start(ctx, session.ChatID)
	case answerNo:
		s.store.Delete(session.ChatID)

		return []Directive{
			SendText{Body: msgFarewell},
			newSearchMenu(),
		}, nil
	default:
		s.store.Delete(session.ChatID)

		return []Directive{
			SendText{Body: msgDoneInvalid},
			newSearchMenu(),
		}, nil
	}
}

// reprompt re-displays the options valid for the session's current state
// without advancing it.
func (s *Service) reprompt(session *Session) []Directive {
	switch session.State {
	case StateAwaitingCategory:
		return []Directive{
			SendText{Body: msgInvalidCategory},
			categoryMenu(remainingCategories(session.Vocabulary, session.Categories)),
		}
	case StateAwaitingMoreCategories, StateDone:
		return []Directive{
			SendText{Body: msgInvalidYesNo},
			yesNoMenu(),
		}
	case StateAwaitingLocation:
		return []Directive{
			SendText{Body: msgAwaitingShare},
			locationMenu(),
		}
	case StateAwaitingAddress:
		return []Directive{
			SendText{Body: msgTypeAddress},
		}
	default:
		return []Directive{SendText{Body: msgNoConversation}}
	}
}
