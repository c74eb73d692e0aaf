package reject

type Problem struct {
	Title  string `json:"title,omitempty"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"message,omitempty"`
}

// ProblemWithTrace pairs the client-facing problem with the underlying
// cause so services can hand both back to their handler.
type ProblemWithTrace struct {
	Problem Problem
	Cause   error
}

func NewProblem() *Problem {
	return &Problem{}
}

func (p *Problem) WithTitle(title string) *Problem {
	p.Title = title
	return p
}

func (p *Problem) WithStatus(status int) *Problem {
	p.Status = status
	return p
}

func (p *Problem) WithDetail(detail string) *Problem {
	p.Detail = detail
	return p
}

func (p *Problem) WithCode(code string) *Problem {
	p.Code = code
	return p
}

func (p *Problem) Build() Problem {
	return *p
}
