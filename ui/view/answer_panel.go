package view

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// AnswerPanel displays the latest vision model answer.
type AnswerPanel interface {
	SetAnswer(text string)
}

type answerPanel struct {
	text *TextWidget
}

// NewAnswerPanel creates a read-only text area for model answers at the given row.
func NewAnswerPanel(row int) AnswerPanel {
	w := Text(Height(6), Width(80))
	Grid(w, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	w.Configure(State("disabled"))
	return &answerPanel{text: w}
}

func (v *answerPanel) SetAnswer(text string) {
	if v == nil || v.text == nil {
		return
	}
	v.text.Configure(State("normal"))
	v.text.Delete("1.0", END)
	v.text.Insert("1.0", text)
	v.text.Configure(State("disabled"))
}
