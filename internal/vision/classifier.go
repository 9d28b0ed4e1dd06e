// Package vision consumes the output of the onboard vision-inference
// sensor. Only the wire format is handled here; the model and inference run
// on the sensor itself.
package vision

// Result is one classification from an inference pass: a class id and a
// confidence score from 0 to 100. Results are transient and consumed
// immediately by the dispatcher.
type Result struct {
	Class int
	Score int
}

// Classifier is the sensor collaborator. Poll returns the classifications
// from any inference output produced since the last call, or (nil, nil)
// when there is nothing new. Poll must not block the bridge loop.
type Classifier interface {
	Poll() ([]Result, error)
	Close() error
}
