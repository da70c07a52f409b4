package tennis

// Event is published to observers as the match progresses. The concrete
// types are PointEvent, GameEvent, SetEvent and MatchEvent.
type Event interface {
	isEvent()
}

// PointEvent follows every resolved point.
type PointEvent struct {
	Set      int // 1-based
	Game     int // 1-based within the set
	Point    Point
	Snapshot Snapshot
}

// GameEvent follows the point that completed a game.
type GameEvent struct {
	Set      int
	Game     int
	Record   GameRecord
	Snapshot Snapshot
}

// SetEvent follows a completed set, after recovery has been applied.
type SetEvent struct {
	Set      int
	Score    SetScore
	Snapshot Snapshot
}

// MatchEvent is published once, when the match is decided.
type MatchEvent struct {
	Winner   Side
	Snapshot Snapshot
}

func (PointEvent) isEvent() {}
func (GameEvent) isEvent()  {}
func (SetEvent) isEvent()   {}
func (MatchEvent) isEvent() {}

// Observer receives match events synchronously on the driving goroutine.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) { f(e) }
