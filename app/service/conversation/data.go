package conversation

// State is the position of one session inside the search dialogue.
type State string

const (
	// StateAwaitingCategory - the category menu is shown, waiting for a pick.
	StateAwaitingCategory State = "awaiting_category"
	// StateAwaitingMoreCategories - waiting for a yes/no "another category?" answer.
	StateAwaitingMoreCategories State = "awaiting_more_categories"
	// StateAwaitingLocation - waiting for a shared location or /skip.
	StateAwaitingLocation State = "awaiting_location"
	// StateAwaitingAddress - waiting for a free-text address to geocode.
	StateAwaitingAddress State = "awaiting_address"
	// StateDone - results were delivered, waiting for a "search again?" answer.
	StateDone State = "done"
)

// Session is one user's independent run through the dialogue. There is no
// session before the entry command and none after cancel/farewell.
type Session struct {
	ChatID int64
	State  State

	// Vocabulary is the category set snapshot taken when the conversation
	// started; all category validation for this conversation runs against it.
	Vocabulary []string

	// Categories accumulates the user's chosen interests, unique, in
	// selection order.
	Categories []string

	// Location is set once resolved, directly or via geocoding.
	Location *GeoPoint
}

type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Event is one inbound chat event, tagged with its session id.
type Event interface {
	SessionID() int64
}

// EntryCommand starts or restarts a conversation.
type EntryCommand struct {
	Chat int64
}

// CancelCommand terminates a conversation at any state.
type CancelCommand struct {
	Chat int64
}

// SkipCommand declines location sharing in favor of a typed address.
type SkipCommand struct {
	Chat int64
}

type TextMessage struct {
	Chat int64
	Text string
}

type LocationMessage struct {
	Chat      int64
	Latitude  float64
	Longitude float64
}

func (e EntryCommand) SessionID() int64    { return e.Chat }
func (e CancelCommand) SessionID() int64   { return e.Chat }
func (e SkipCommand) SessionID() int64     { return e.Chat }
func (e TextMessage) SessionID() int64     { return e.Chat }
func (e LocationMessage) SessionID() int64 { return e.Chat }

// Directive is one outbound instruction for the responder. A turn produces
// an ordered list of directives; delivering them is the transport's job.
type Directive interface {
	isDirective()
}

type SendText struct {
	Body string
}

// ShowMenu presents an ordered list of reply options. The responder attaches
// it to the preceding SendText when possible.
type ShowMenu struct {
	Options     []string
	Placeholder string
}

type SendLocation struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// ClearMenu removes any visible reply menu.
type ClearMenu struct{}

func (SendText) isDirective()     {}
func (ShowMenu) isDirective()     {}
func (SendLocation) isDirective() {}
func (ClearMenu) isDirective()    {}
