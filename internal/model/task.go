package model

// Task is a single entry in the ordered task list.
type Task struct {
	// ID is unique within the list that owns the task.
	ID string `json:"id" yaml:"id"`

	// Text is what the user typed when creating the task.
	Text string `json:"text" yaml:"text"`

	// Completed is flipped by the toggle action.
	Completed bool `json:"completed" yaml:"completed"`

	// Category is the tag the task was filed under.
	Category Category `json:"category" yaml:"category"`
}
