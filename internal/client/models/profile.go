package models

// Profile is the server-owned account record. The client keeps a
// read-through cached copy in the settings accessor.
type Profile struct {
	Name  string
	Email string
	Age   int
}
