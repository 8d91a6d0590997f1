package css

import "fmt"

// SyntaxError reports a problem located at a node of the stylesheet
type SyntaxError struct {
	Message  string
	Position Position
}

func (e *SyntaxError) Error() string {
	// Positions are 0-based internally; humans count from 1
	return fmt.Sprintf("%d:%d: %s", e.Position.Line+1, e.Position.Character+1, e.Message)
}

func newSyntaxError(message string, pos Position) error {
	return &SyntaxError{Message: message, Position: pos}
}
