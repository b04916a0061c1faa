package game

import "math/rand"

// Point represents a coordinate on the game board
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p moved by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction is a heading on the board. The zero value means "no direction".
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Delta returns the one-cell offset for the direction
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return "NONE"
	}
}

// Status is the game lifecycle phase
type Status int

const (
	NotStarted Status = iota
	Playing
	GameOver
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Collision describes what ended a game
type Collision int

const (
	NoCollision Collision = iota
	CollisionWall
	CollisionSelf
	CollisionBoardFull
)

func (c Collision) String() string {
	switch c {
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	case CollisionBoardFull:
		return "board_full"
	default:
		return "none"
	}
}

// State is the authoritative game data. It is owned by one driver and
// passed explicitly to the simulator, renderer and input handler.
type State struct {
	GridSize   int
	Snake      []Point   // Head at index 0
	Heading    Direction // Direction applied by the last step
	Pending    Direction // Queued change, None when empty
	Food       Point
	FoodPlaced bool // False only when the board had no free cell
	Score      int
	HighScore  int
	Status     Status
	CrashPoint *Point // Where the head would have gone on the fatal step

	rng *rand.Rand
}

// Outcome summarises a finished game for the game-over display
type Outcome struct {
	Score        int  `json:"score"`
	HighScore    int  `json:"highScore"`
	NewHighScore bool `json:"newHighScore"`
}

// StepResult reports what a single step did
type StepResult struct {
	Moved     bool
	Ate       bool
	Collision Collision
	Outcome   *Outcome // Set when the step ended the game
	Err       error    // Internal invariant violation, see ErrNoFreeCell
}

// Snapshot is a copy of the state for clients that must not touch State
type Snapshot struct {
	GridSize   int     `json:"gridSize"`
	Snake      []Point `json:"snake"`
	Heading    string  `json:"heading"`
	Food       *Point  `json:"food,omitempty"`
	Score      int     `json:"score"`
	HighScore  int     `json:"highScore"`
	Status     string  `json:"status"`
	CrashPoint *Point  `json:"crashPoint,omitempty"`
}
