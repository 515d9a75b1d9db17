package apperr

// Catalog keys. English text doubles as the fallback translation; see package
// locale for the other languages.
const (
	MsgSurveyNotFound     = "Survey not found"
	MsgSurveyExpired      = "This survey has expired and can no longer be filled in"
	MsgAlreadySubmitted   = "You have already completed this survey. Multiple submissions are blocked."
	MsgUnknownQuestion    = "The survey has been modified: question %s no longer exists"
	MsgUnknownChoice      = "The survey has been modified: %q is not a choice of question %s"
	MsgMissingAnswer      = "Question %s requires an answer"
	MsgTooManyAnswers     = "Question %s of type %s accepts exactly one answer"
	MsgDuplicateChoice    = "Choice %q was selected more than once for question %s"
	MsgQuestionOrder      = "The proper order of questions was not followed"
	MsgChoiceOrder        = "The proper order of choices was not followed for question %d"
	MsgStatusNotSettable  = "Status %q cannot be set manually"
	MsgStatusExpired      = "This survey has expired and its status can no longer be changed"
	MsgSurveyLocked       = "The survey already has responses and can no longer be edited"
	MsgShareLinkNotFound  = "Link not found or expired"
	MsgShareLinkExhausted = "This link has reached its response limit"
	MsgShareLinkForbidden = "You do not have permission to delete this link"
	MsgChoicesRequired    = "Question %d of type %s needs at least one choice"
	MsgChoicesNotAllowed  = "Question %d of type %s does not take choices"
	MsgDuplicateOption    = "Question %d lists choice %q more than once"
	MsgInvalidBody        = "Invalid JSON"
	MsgInvalidField       = "Field %s failed the %s rule"
	MsgUnauthorized       = "A valid owner token is required"
	MsgForbidden          = "You do not own this survey"
	MsgDatabase           = "Database error"
)
