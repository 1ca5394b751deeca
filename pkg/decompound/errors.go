package decompound

import "fmt"

// LoadError reports unreadable or malformed dictionary, glue or classifier
// data. It is only returned at construction time; lookups never fail.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("decompound: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadError(source string, err error) error {
	if err == nil {
		return nil
	}
	return &LoadError{Source: source, Err: err}
}
