package task

// Key codes recognized by the controller. The empty string means "unset":
// an unset AdvanceBlockKey selects automatic block advancement, and an
// unset AdvanceTrialKey never matches a key press.
const (
	KeyNone   = ""
	KeyReturn = "return"
	KeySpace  = "space"
	KeyEscape = "escape"
)
