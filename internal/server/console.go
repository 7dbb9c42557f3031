package server

import (
	"math/rand/v2"
	"sync"
)

const consoleLines = 8

var consoleMessages = []string{
	"System initialized. Checking frequencies...",
	"Loading fullstack rhythms into buffer...",
	"Synthesizing high-performance API endpoints...",
	"Deploying Docker containers to the rhythm...",
	"Database synchronized. Latency: 12ms.",
	"New commit detected on main stage...",
	"Compiling CSS harmonies...",
	"Hot reload ready. All systems hot.",
	"Artist entering the booth...",
	"Scanning projects for platinum potential...",
	"Scaling infrastructure to 10k monthly visitors...",
	"Optimizing handlers for maximum groove...",
}

// Console is the cosmetic "live set" log on the bio page. Each poll adds a
// random line and the newest consoleLines are shown.
type Console struct {
	mu    sync.Mutex
	lines []string
	pick  func(n int) int
}

func NewConsole() *Console {
	return &Console{
		lines: []string{consoleMessages[0]},
		pick:  rand.IntN,
	}
}

// Lines returns the visible lines without advancing.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Next appends one random line and returns the visible lines.
func (c *Console) Next() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, consoleMessages[c.pick(len(consoleMessages))])
	if len(c.lines) > consoleLines {
		c.lines = append([]string(nil), c.lines[len(c.lines)-consoleLines:]...)
	}
	return append([]string(nil), c.lines...)
}
