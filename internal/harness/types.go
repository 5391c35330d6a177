package harness

// CaseResult is the outcome of one case.
type CaseResult struct {
	Query     string   `json:"query"`
	Scope     string   `json:"scope,omitempty"`
	Cards     []string `json:"cards,omitempty"`
	Printings int      `json:"printings,omitempty"`
	ErrorCode string   `json:"error,omitempty"`
	Errors    []string `json:"-"`
}

// Pass reports whether every expectation of the case held.
func (c *CaseResult) Pass() bool {
	return len(c.Errors) == 0
}

// Result is the outcome of a scenario.
type Result struct {
	// Pass indicates overall test success: every case passed.
	Pass bool `json:"pass"`

	// Cases holds one entry per scenario case, in scenario order.
	Cases []CaseResult `json:"cases"`

	// Errors contains every failure message, prefixed by its case.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
