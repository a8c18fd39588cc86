package config

// Validator is implemented by configurations that can check themselves
// after loading.
type Validator interface {
	Validate() error
}
