package fakes

type FakePrompter struct {
	ConfirmQuestions []string

	// Answers are consumed in order; once exhausted ConfirmAnswer is used.
	ConfirmAnswers []bool
	ConfirmAnswer  bool
	ConfirmErr     error
}

func (p *FakePrompter) Confirm(question string) (bool, error) {
	p.ConfirmQuestions = append(p.ConfirmQuestions, question)

	if p.ConfirmErr != nil {
		return false, p.ConfirmErr
	}

	if len(p.ConfirmAnswers) > 0 {
		answer := p.ConfirmAnswers[0]
		p.ConfirmAnswers = p.ConfirmAnswers[1:]
		return answer, nil
	}

	return p.ConfirmAnswer, nil
}
