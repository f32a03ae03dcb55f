package domain

// Button is an inline keyboard button: either callback Data or an external URL
type Button struct {
	Text string
	Data string
	URL  string
}

// Keyboard is a grid of inline buttons
type Keyboard [][]Button

// Screen is a single bot message shown to a user
type Screen struct {
	Text      string
	ImagePath string
	Keyboard  Keyboard
}

// HasImage reports whether the screen should be sent as a photo
func (s Screen) HasImage() bool {
	return s.ImagePath != ""
}
