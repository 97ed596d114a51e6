package judge

// Token is the judge's handle for a queued submission.
type Token string

type Status int

const (
	StatusQueued Status = iota
	StatusProcessing
	StatusAccepted
	StatusWrongAnswer
	StatusCompileError
	StatusRuntimeError
	StatusTimeLimitExceeded
	StatusOther
)

// status ids used by the judge's wire protocol
const (
	statusIDInQueue           = 1
	statusIDProcessing        = 2
	statusIDAccepted          = 3
	statusIDWrongAnswer       = 4
	statusIDTimeLimitExceeded = 5
	statusIDCompilationError  = 6
	statusIDRuntimeErrorFirst = 7
	statusIDRuntimeErrorLast  = 12
)

func statusFromID(id int) Status {
	switch {
	case id == statusIDInQueue:
		return StatusQueued
	case id == statusIDProcessing:
		return StatusProcessing
	case id == statusIDAccepted:
		return StatusAccepted
	case id == statusIDWrongAnswer:
		return StatusWrongAnswer
	case id == statusIDTimeLimitExceeded:
		return StatusTimeLimitExceeded
	case id == statusIDCompilationError:
		return StatusCompileError
	case id >= statusIDRuntimeErrorFirst && id <= statusIDRuntimeErrorLast:
		return StatusRuntimeError
	default:
		return StatusOther
	}
}

func (s Status) Terminal() bool {
	return s != StatusQueued && s != StatusProcessing
}

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusProcessing:
		return "processing"
	case StatusAccepted:
		return "accepted"
	case StatusWrongAnswer:
		return "wrong answer"
	case StatusCompileError:
		return "compilation error"
	case StatusRuntimeError:
		return "runtime error"
	case StatusTimeLimitExceeded:
		return "time limit exceeded"
	default:
		return "other"
	}
}

type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type ReferenceSolution struct {
	Language   string `json:"language" validate:"required"`
	SourceCode string `json:"solution_code" validate:"required"`
}

// SubmissionRequest is one (solution, test case) pair sent to the judge.
type SubmissionRequest struct {
	LanguageID     int
	SourceCode     string
	Stdin          string
	ExpectedOutput string
}

type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Result is the judge's view of a submission. Only the judge mutates it.
type Result struct {
	Token         Token
	Status        Status
	StatusID      int
	Description   string
	Stdout        string
	Stderr        string
	CompileOutput string
	Message       string
	Time          string
	Memory        int
}

// diagnostic returns the most useful output for an operator.
func (r Result) diagnostic() string {
	for _, s := range []string{r.CompileOutput, r.Stderr, r.Message} {
		if s != "" {
			return s
		}
	}
	return r.Description
}
