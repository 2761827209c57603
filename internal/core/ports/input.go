package ports

// LineReader supplies interactive console input one line at a time.
// ReadLine returns io.EOF when the user signals end of input; any
// other error is a read failure. Implementations may keep input
// history across calls within one session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}
