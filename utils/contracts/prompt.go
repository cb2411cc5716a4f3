package contracts

// ISelector presents an ordered list of options with one highlighted as
// current and returns the zero-based index of the confirmed option. It blocks
// until the user confirms a choice.
type ISelector interface {
	Select(title string, options []string) (int, error)
}

// IDirectoryPicker asks the user for exactly one existing directory.
type IDirectoryPicker interface {
	PickDirectory(prompt string) (string, error)
}
