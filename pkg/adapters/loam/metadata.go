package loam

// AliasMetadata is the frontmatter of an alias document:
//
//	---
//	name: greet
//	command: "!echo hello"
//	description: Says hello.
//	---
//	Optional longer help, used when description is empty.
type AliasMetadata struct {
	Name        string `json:"name" mapstructure:"name"`
	Command     string `json:"command" mapstructure:"command"`
	Description string `json:"description" mapstructure:"description"`
}
