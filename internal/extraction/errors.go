package extraction

import "fmt"

// EmptyInputError indicates a mandatory text input was missing or blank
type EmptyInputError struct {
	Input string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s text is empty", e.Input)
}
