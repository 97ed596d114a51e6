package judge

// Outcome is the verdict of one language's reference solution.
type Outcome struct {
	Language  string
	TestCases int
	Verified  bool
	// 1-indexed position of the first failing test case, 0 when verified
	FailedTestCase int
	FailedStatus   Status
	Diagnostic     string
}

// Evaluate reports the first result that is not accepted. results must be
// complete and in test case order.
func Evaluate(language string, results []Result) Outcome {
	outcome := Outcome{
		Language:  language,
		TestCases: len(results),
		Verified:  true,
	}
	for i, res := range results {
		if res.Status == StatusAccepted {
			continue
		}
		outcome.Verified = false
		outcome.FailedTestCase = i + 1
		outcome.FailedStatus = res.Status
		outcome.Diagnostic = res.diagnostic()
		break
	}
	return outcome
}
