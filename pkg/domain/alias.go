package domain

// Alias names a command line so it can be invoked as a command of its own.
// Arguments given to the alias are appended to the aliased line.
type Alias struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Command     string `json:"command" yaml:"command" mapstructure:"command"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Source      string `json:"source,omitempty" yaml:"-" mapstructure:"-"`
}
