package ports

// ConsoleSession is one authenticated remote-console connection.
type ConsoleSession interface {
	// Execute sends one command and returns its textual response.
	Execute(command string) (string, error)
	Close() error
}

// ConsoleDialer opens remote-console sessions. The authentication
// credential is fixed by the implementation, not configurable here.
type ConsoleDialer interface {
	Dial(host string, port string) (ConsoleSession, error)
}
