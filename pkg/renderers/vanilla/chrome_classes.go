package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm         ChromeClass = "formflow-form"
	ClassGroup        ChromeClass = "formflow-group"
	ClassField        ChromeClass = "formflow-field"
	ClassLabel        ChromeClass = "formflow-label"
	ClassControl      ChromeClass = "formflow-control"
	ClassChoice       ChromeClass = "formflow-choice"
	ClassCheckbox     ChromeClass = "formflow-checkbox"
	ClassCounter      ChromeClass = "formflow-counter"
	ClassHelp         ChromeClass = "formflow-help"
	ClassError        ChromeClass = "formflow-error"
	ClassErrorSummary ChromeClass = "formflow-error-summary"
	ClassNotice       ChromeClass = "formflow-notice"
	ClassActions      ChromeClass = "formflow-actions"
	ClassConfirmation ChromeClass = "formflow-confirmation"
)

// Default*Class values are the classes emitted on structural elements.
const (
	DefaultFormClass         = string(ClassForm)
	DefaultGroupClass        = string(ClassGroup)
	DefaultFieldClass        = string(ClassField)
	DefaultErrorClass        = string(ClassError)
	DefaultErrorSummaryClass = string(ClassErrorSummary)
	DefaultNoticeClass       = string(ClassNotice)
	DefaultActionsClass      = string(ClassActions)
)
