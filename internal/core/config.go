package core

// RuntimeConfig contains configuration passed to a front-end at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Scheduler ticks per second (default 60)
	Seed     int64 // RNG seed for particles and generated levels
}
