package config

import "time"

// Game board dimensions
const (
	GridSize    = 20 // Cells per side of the square board
	MinGridSize = 3  // Smallest board that fits the starting snake
)

// Loop timing
const (
	TickInterval = 100 * time.Millisecond // Time between simulation steps
)

// Food placement settings
const (
	MaxFoodAttempts = 64 // Random draws before falling back to a board scan
)

// Surface dimensions
const (
	WindowWidth    = 400 // Window surface, pixels
	WindowHeight   = 400
	WindowHUD      = 72 // Extra pixels under the board for score and messages
	TerminalWidth  = 40 // Terminal surface, character cells (two per grid cell)
	TerminalHeight = 20
	CellPadding    = 1 // Gutter between neighbouring cells
)

// Colors (RGB), matching the classic canvas palette
const (
	ColorSnake      = 0x4CAF50
	ColorFood       = 0xFF0000
	ColorCrash      = 0xFF9800
	ColorBackground = 0xFFFFFF
)

// Messages shown by the display collaborators
const (
	MsgStart        = "press SPACE to start"
	MsgGameOver     = "game over!"
	MsgNewHighScore = "new high score!"
	MsgRestart      = "press SPACE to play again"
	MsgKeyHelp      = "Arrows/WASD to move, SPACE to start, Q to quit"
)

// Spectator feed
const (
	SpectatePath       = "/ws"
	SpectateSendBuffer = 16 // Frames queued per client before dropping
)
